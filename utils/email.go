package utils

import (
    "os"
    "strconv"

    "gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
    from := os.Getenv("SMTP_FROM")
    host := os.Getenv("SMTP_HOST")
    port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
    if port == 0 {
        port = 465
    }

    m := gomail.NewMessage()
    m.SetHeader("From", from)
    m.SetHeader("To", to)
    m.SetHeader("Subject", subject)
    m.SetBody("text/plain", body)

    d := gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))

    return d.DialAndSend(m)
}

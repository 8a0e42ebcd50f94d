package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/middleware"
	"github.com/kaltre10/repuestos-oriente-sub001/routes"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("No se encontró archivo .env, usando variables del entorno")
	}

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())

	// /metrics endpoint
	r.GET("/metrics", func(c *gin.Context) {
		allowed := os.Getenv("METRICS_IP")
		if allowed != "" && c.ClientIP() != allowed {
			c.AbortWithStatus(403)
			return
		}
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	// Configuración de CORS
	origins := []string{"https://repuestosoriente.com", "https://admin.repuestosoriente.com"}
	if extra := os.Getenv("CORS_ORIGIN"); extra != "" {
		origins = append(origins, extra)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Zona horaria y planificador de tareas
	location, err := time.LoadLocation("America/Caracas")
	if err != nil {
		fmt.Println("Error cargando la zona horaria:", err)
		return
	}
	s := gocron.NewScheduler(location)
	s.Every(1).Day().At("01:10").Do(utils.RollupVisits)
	s.StartAsync() // Planificador en segundo plano

	config.ConnectDatabase()
	routes.InitializeRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	r.Run(":" + port)
}

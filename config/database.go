package config

import (
    "context"
    "log"
    "os"
    "time"

    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
)

var(
    Client *mongo.Client
    UserCollection *mongo.Collection
    SessionCollection *mongo.Collection
    BrandCollection *mongo.Collection
    CarModelCollection *mongo.Collection
    CategoryCollection *mongo.Collection
    SubcategoryCollection *mongo.Collection
    ProductCollection *mongo.Collection
    SaleCollection *mongo.Collection
    OrderCollection *mongo.Collection
    ConfigCollection *mongo.Collection
    PaymentMethodCollection *mongo.Collection
    PaymentTypeCollection *mongo.Collection
    QuestionCollection *mongo.Collection
    RatingCollection *mongo.Collection
    VisitCollection *mongo.Collection
    VisitDailyCollection *mongo.Collection
)

func ConnectDatabase() {
    client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
    if err != nil {
        log.Fatal(err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    err = client.Connect(ctx)
    if err != nil {
        log.Fatal(err)
    }

    err = client.Ping(ctx, nil)
    if err != nil {
        log.Fatal(err)
    }

    dbName := os.Getenv("MONGO_DB")
    if dbName == "" {
        dbName = "repuestosoriente"
    }

    Client = client
    UserCollection = Client.Database(dbName).Collection("users")
    SessionCollection = Client.Database(dbName).Collection("sessions")

    BrandCollection = Client.Database(dbName).Collection("brands")
    CarModelCollection = Client.Database(dbName).Collection("carmodels")
    CategoryCollection = Client.Database(dbName).Collection("categories")
    SubcategoryCollection = Client.Database(dbName).Collection("subcategories")
    ProductCollection = Client.Database(dbName).Collection("products")

    SaleCollection = Client.Database(dbName).Collection("sales")
    OrderCollection = Client.Database(dbName).Collection("orders")
    ConfigCollection = Client.Database(dbName).Collection("configs")
    PaymentMethodCollection = Client.Database(dbName).Collection("paymentmethods")
    PaymentTypeCollection = Client.Database(dbName).Collection("paymenttypes")

    QuestionCollection = Client.Database(dbName).Collection("questions")
    RatingCollection = Client.Database(dbName).Collection("ratings")
    VisitCollection = Client.Database(dbName).Collection("visits")
    VisitDailyCollection = Client.Database(dbName).Collection("visitsdaily")

    log.Println("Connected to MongoDB")
}

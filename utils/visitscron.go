package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
)

// RollupVisits acumula las visitas del dia anterior en un documento
// diario y borra los registros individuales ya contados. Corre una vez
// por noche desde el scheduler de main.
func RollupVisits() {
	log.Println("Inicio de RollupVisits")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	day := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	cursor, err := config.VisitCollection.Find(ctx, bson.M{"day": day})
	if err != nil {
		log.Printf("RollupVisits: error buscando visitas del %s: %v", day, err)
		return
	}
	defer cursor.Close(ctx)

	var visits []models.Visit
	if err := cursor.All(ctx, &visits); err != nil {
		log.Printf("RollupVisits: error decodificando visitas: %v", err)
		return
	}

	if len(visits) == 0 {
		log.Printf("RollupVisits: sin visitas para %s", day)
		return
	}

	pages := map[string]int64{}
	for _, v := range visits {
		pages[v.Page]++
	}

	update := bson.M{
		"$set": bson.M{
			"day":   day,
			"total": int64(len(visits)),
			"pages": pages,
		},
	}
	_, err = config.VisitDailyCollection.UpdateOne(ctx, bson.M{"day": day}, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("RollupVisits: error guardando acumulado de %s: %v", day, err)
		return
	}

	if _, err := config.VisitCollection.DeleteMany(ctx, bson.M{"day": day}); err != nil {
		log.Printf("RollupVisits: error limpiando visitas de %s: %v", day, err)
		return
	}

	log.Printf("RollupVisits: %d visitas acumuladas para %s", len(visits), day)
}

// Command gen writes type-safe gorm query helpers for the persistence models.
package main

import (
	"agriconnect/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	g := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.ApplyBasic(model.All()...)

	g.Execute()
}

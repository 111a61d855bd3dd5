package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipeshare/catalog/backend/internal/model"
)

// Migrate creates or updates the schema for every catalog model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func describe(s string) *string { return &s }

// DefaultDietaryTags is the tag set the catalog ships with
var DefaultDietaryTags = []model.DietaryTag{
	{Name: "Vegetarian", DisplayName: "Vegetarian", Description: describe("Contains no meat or fish")},
	{Name: "Vegan", DisplayName: "Vegan", Description: describe("Contains no animal products")},
	{Name: "GlutenFree", DisplayName: "Gluten-Free", Description: describe("Contains no gluten")},
	{Name: "DairyFree", DisplayName: "Dairy-Free", Description: describe("Contains no dairy products")},
	{Name: "HighProtein", DisplayName: "High Protein", Description: describe("High in protein content")},
	{Name: "LowCarb", DisplayName: "Low-Carb", Description: describe("Low in carbohydrates")},
	{Name: "NutFree", DisplayName: "Nut-Free", Description: describe("Contains no nuts")},
}

// DefaultDifficultyLevels is the difficulty scale the catalog ships with
var DefaultDifficultyLevels = []model.DifficultyLevel{
	{Name: "Beginner", DisplayName: "Beginner (Easy)", Description: describe("Simple recipes with basic techniques and few ingredients")},
	{Name: "Intermediate", DisplayName: "Intermediate (Medium)", Description: describe("Recipes requiring some cooking experience and moderate techniques")},
	{Name: "Advanced", DisplayName: "Advanced (Hard)", Description: describe("Complex recipes requiring advanced techniques and experience")},
}

// SeedReferenceData inserts missing dietary tags and difficulty levels, matched by code name
func SeedReferenceData(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, tag := range DefaultDietaryTags {
			created, err := firstOrCreate(tx, &model.DietaryTag{}, tag.Name, &tag)
			if err != nil {
				return fmt.Errorf("failed to seed dietary tag %s: %w", tag.Name, err)
			}
			if created {
				log.Info("seeded dietary tag", zap.String("name", tag.Name))
			}
		}
		for _, level := range DefaultDifficultyLevels {
			created, err := firstOrCreate(tx, &model.DifficultyLevel{}, level.Name, &level)
			if err != nil {
				return fmt.Errorf("failed to seed difficulty level %s: %w", level.Name, err)
			}
			if created {
				log.Info("seeded difficulty level", zap.String("name", level.Name))
			}
		}
		return nil
	})
}

func firstOrCreate(tx *gorm.DB, dest interface{}, name string, row interface{}) (bool, error) {
	err := tx.Where("name = ?", name).First(dest).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := tx.Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}

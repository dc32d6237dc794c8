package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"kisansathi/report"
)

type App struct {
	cfg      Config
	log      *zap.Logger
	mongo    *mongo.Client
	db       *mongo.Database
	users    *mongo.Collection
	crops    *mongo.Collection
	validate *validator.Validate
	renderer *report.Renderer
}

func newApp(ctx context.Context, cfg Config, log *zap.Logger) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	app := &App{
		cfg:      cfg,
		log:      log,
		mongo:    client,
		db:       db,
		users:    db.Collection("users"),
		crops:    db.Collection("crops"),
		validate: validator.New(),
		renderer: report.NewRenderer(cfg.RendererURI),
	}
	// Indexes
	if _, err := app.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, err
	}
	if _, err := app.crops.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return nil, err
	}
	if _, err := app.crops.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
	}); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }

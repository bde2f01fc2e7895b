package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// Seed inserts the demo accounts and the default configuration sections on
// first run. Collections that already hold data are left untouched.
func Seed(ctx context.Context, db *mongo.Database) error {
	if err := seedAccounts(ctx, db); err != nil {
		return err
	}
	return seedConfigSections(ctx, db)
}

type demoAccount struct {
	id       string
	name     string
	email    string
	password string
	role     domain.Role
}

var demoAccounts = []demoAccount{
	{"demo-admin", "Administrador Principal", "admin@logicem.com", "LogicemAdmin2024!", domain.RoleAdmin},
	{"demo-manager", "Gestor de Campañas", "manager@logicem.com", "LogicemManager2024!", domain.RoleManager},
	{"demo-agent", "Agente de Llamadas", "agent@logicem.com", "LogicemAgent2024!", domain.RoleAgent},
	{"demo-agent-2", "Carlos Rodríguez", "carlos@logicem.com", "LogicemAgent2024!", domain.RoleAgent},
	{"demo-agent-3", "María González", "maria@logicem.com", "LogicemAgent2024!", domain.RoleAgent},
	{"demo-manager-2", "Sofía Martínez", "sofia@logicem.com", "LogicemManager2024!", domain.RoleManager},
}

func seedAccounts(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	creds := db.Collection(collectionCredentials)
	n, err := creds.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if n > 0 {
		return nil
	}

	seededAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	credDocs := make([]any, 0, len(demoAccounts))
	userDocs := make([]any, 0, len(demoAccounts))
	for _, a := range demoAccounts {
		credDocs = append(credDocs, &domain.Credential{ID: a.id, Email: a.email, Password: a.password, Role: a.role})
		userDocs = append(userDocs, &domain.AppUser{ID: a.id, Name: a.name, Email: a.email, Role: a.role, CreatedAt: seededAt})
	}

	if _, err := creds.InsertMany(ctx, credDocs); err != nil {
		return fmt.Errorf("seed credentials: %w", err)
	}
	if _, err := db.Collection(collectionUsers).InsertMany(ctx, userDocs); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}

// defaultSections is the factory catalogue every fresh database starts from.
var defaultSections = []*domain.ConfigSection{
	{Key: domain.SectionVehicleTypes, Title: "Tipos de Vehículo", Items: []domain.ConfigItem{
		{ID: "1", Description: "Tractocamión", Active: true},
		{ID: "2", Description: "Dobletroque", Active: true},
		{ID: "3", Description: "Sencillo", Active: false},
	}},
	{Key: domain.SectionTrailerTypes, Title: "Tipos de Tráiler", Items: []domain.ConfigItem{
		{ID: "1", Description: "Estacas", Active: true},
		{ID: "2", Description: "Plancha", Active: true},
		{ID: "3", Description: "Furgón", Active: true},
	}},
	{Key: domain.SectionProductTypes, Title: "Tipos de Productos Preferidos", Items: []domain.ConfigItem{
		{ID: "1", Description: "Acerero", Active: true},
		{ID: "2", Description: "Carrocería general", Active: true},
		{ID: "3", Description: "Construcción", Active: false},
	}},
	{Key: domain.SectionNoInterest, Title: "No Interesado en Logicem", Items: []domain.ConfigItem{
		{ID: "1", Description: "Mala atención", Active: true},
		{ID: "2", Description: "No paga a tiempo", Active: true},
		{ID: "3", Description: "Experiencia negativa anterior", Active: true},
	}},
	{Key: domain.SectionRestrictions, Title: "Motivos de Restricción de Cargue", Items: []domain.ConfigItem{
		{ID: "1", Description: "Tiempo de cargue lento", Active: true},
		{ID: "2", Description: "Vía en mal estado", Active: true},
		{ID: "3", Description: "Horarios restringidos", Active: true},
	}},
	{Key: domain.SectionOfferRejections, Title: "Motivos de No Interés en Ofertas", Items: []domain.ConfigItem{
		{ID: "1", Description: "Flete bajo", Active: true},
		{ID: "2", Description: "No se encuentra cerca", Active: true},
		{ID: "3", Description: "Ya está cargado", Active: true},
		{ID: "4", Description: "Destino no conveniente", Active: false},
	}},
	{Key: domain.SectionClients, Title: "Clientes", Items: []domain.ConfigItem{
		{ID: "1", Description: "Cliente A", Active: true},
		{ID: "2", Description: "Cliente B", Active: true},
		{ID: "3", Description: "Cliente C", Active: false},
	}},
}

func seedConfigSections(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	col := db.Collection(collectionConfigSections)
	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed config sections: %w", err)
	}
	if n > 0 {
		return nil
	}

	seededAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := make([]any, 0, len(defaultSections))
	for _, s := range defaultSections {
		for i := range s.Items {
			s.Items[i].CreatedAt = seededAt
		}
		docs = append(docs, s)
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed config sections: %w", err)
	}
	return nil
}

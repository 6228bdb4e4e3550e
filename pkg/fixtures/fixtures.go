// Package fixtures ships the embedded Saitama-chain demo dataset: three
// stores, their staff, one day of shifts, and a handful of open postings.
// Every document is schema-checked before it is handed to a seeder.
package fixtures

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/*.json
var data embed.FS

// Stores returns the demo store chain.
func Stores() ([]*models.Store, error) {
	var stores []*models.Store
	if err := load("stores.json", storesSchema, &stores); err != nil {
		return nil, err
	}

	return stores, nil
}

// Workers returns the demo staff roster.
func Workers() ([]*models.Worker, error) {
	var workers []*models.Worker
	if err := load("workers.json", workersSchema, &workers); err != nil {
		return nil, err
	}

	return workers, nil
}

// Shifts returns the demo day's shift timeline.
func Shifts() ([]*models.Shift, error) {
	var shifts []*models.Shift
	if err := load("shifts.json", shiftsSchema, &shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// Publishings returns the demo posting container.
func Publishings() (*models.Publishing, error) {
	var publishing models.Publishing
	if err := load("publishings.json", publishingsSchema, &publishing); err != nil {
		return nil, err
	}

	return &publishing, nil
}

// Requests returns the demo inter-store requests.
func Requests() ([]*models.Request, error) {
	var requests []*models.Request
	if err := load("requests.json", requestsSchema, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// SeedAll loads every fixture collection into the given backend.
func SeedAll(ctx context.Context, p persistence.Persistence) error {
	stores, err := Stores()
	if err != nil {
		return err
	}

	if err := p.SeedStores(ctx, stores); err != nil {
		return err
	}

	workers, err := Workers()
	if err != nil {
		return err
	}

	if err := p.SeedWorkers(ctx, workers); err != nil {
		return err
	}

	shifts, err := Shifts()
	if err != nil {
		return err
	}

	if err := p.SeedShifts(ctx, shifts); err != nil {
		return err
	}

	publishing, err := Publishings()
	if err != nil {
		return err
	}

	if err := p.SavePublishing(ctx, publishing); err != nil {
		return err
	}

	requests, err := Requests()
	if err != nil {
		return err
	}

	for _, request := range requests {
		if err := p.SaveRequest(ctx, request); err != nil {
			return err
		}
	}

	return nil
}

func load(name, schema string, out any) error {
	raw, err := data.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}

	if err := validate(name, schema, raw); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal fixture %s: %w", name, err)
	}

	return nil
}

func validate(name, schema string, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validate fixture %s: %w", name, err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}

	return fmt.Errorf("fixture %s is invalid: %s", name, strings.Join(details, "; "))
}

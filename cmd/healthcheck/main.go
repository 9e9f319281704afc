// main.go
//
// Document version lifecycle service for the RyR back-office
// Copyright (c) 2026 N. Rodriguez
//
// This file is part of ryr-documentos.
// ryr-documentos is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// ryr-documentos is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with ryr-documentos.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/NRodriguezT98/ryr-documentos/internal/config"
	"github.com/NRodriguezT98/ryr-documentos/internal/database"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Connect to object storage
	store, err := storage.NewMinioStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, db, store)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}

package services

import (
	"fmt"
	"log"

	"github.com/mmoutenot/latitune/internal/config"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Echonest     string            `json:"echonest"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check EchoNest connectivity; metadata lookups degrade gracefully, so an
	// unreachable service only degrades the report
	if err := utils.PingEchonest(cfg.EchonestURL); err != nil {
		result.Echonest = "unreachable"
		result.Details["echonest_error"] = err.Error()
		if result.Status == "healthy" {
			result.Status = "degraded"
		}
		log.Printf("Health check - echonest ping: %v", err)
	} else {
		result.Echonest = "ok"
		result.Details["echonest_url"] = cfg.EchonestURL
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}

package db

import (
	"fmt"

	"github.com/AppIpe/api-imovel/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Conectar abre a conexão com o Postgres. Credenciais vêm do ambiente
// ou, em produção, do Secrets Manager.
func Conectar(cfg *config.Config) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	var sslMode string
	if cfg.DB.SSLModeDisable {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.DB.Host, username, password, cfg.DB.Name, cfg.DB.Port, sslMode)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/AppIpe/api-imovel/internal/config"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials prefere usuário/senha do ambiente; sem eles,
// busca o segredo configurado no Secrets Manager.
func retrieveCredentials(cfg *config.Config) (string, string, error) {
	if cfg.DB.User != "" && cfg.DB.Password != "" {
		return cfg.DB.User, cfg.DB.Password, nil
	}
	if cfg.DB.SecretID == "" {
		return "", "", fmt.Errorf("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return "", "", fmt.Errorf("carregar configuração AWS: %w", err)
	}
	client := secretsmanager.NewFromConfig(awsCfg)

	result, err := client.GetSecretValue(context.TODO(), &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.DB.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("buscar segredo %s: %w", cfg.DB.SecretID, err)
	}

	var secret credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("decodificar segredo: %w", err)
	}
	return secret.Username, secret.Password, nil
}

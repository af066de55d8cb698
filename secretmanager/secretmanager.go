package secretmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var (
	loadDefaultConfig       = config.LoadDefaultConfig
	newSecretsManagerClient = func(cfg aws.Config) secretsManagerAPI {
		return secretsmanager.NewFromConfig(cfg)
	}
)

const requestTimeout = 10 * time.Second

// GetSecret returns the current string value of the named secret.
func GetSecret(secretName string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cfg, err := loadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	output, err := newSecretsManagerClient(cfg).GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", secretName, err)
	}

	if output.SecretString != nil {
		return *output.SecretString, nil
	}
	if len(output.SecretBinary) > 0 {
		return string(output.SecretBinary), nil
	}
	return "", fmt.Errorf("secret %s has no value", secretName)
}

// GetSecretMap decodes a secret holding a flat JSON object. Non-string
// values such as a numeric port are formatted with %v.
func GetSecretMap(secretName string) (map[string]string, error) {
	raw, err := GetSecret(secretName)
	if err != nil {
		return nil, err
	}

	var values map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("parse secret %s: %w", secretName, err)
	}

	secrets := make(map[string]string, len(values))
	for key, value := range values {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			secrets[key] = v
		default:
			secrets[key] = fmt.Sprintf("%v", v)
		}
	}
	return secrets, nil
}

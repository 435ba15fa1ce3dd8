// Package secrets resolves the document store credentials for a deployment
// region. Production reads an AWS Secrets Manager secret; a canned fake
// provider exists for pre-production smoke testing.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// secretName identifies the read-write database credential in Secrets
// Manager. One secret per region.
const secretName = "service/atlas/bacon_readwriteany"

// DBSecret is the JSON shape of the stored credential.
type DBSecret struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	MongoConnection string `json:"MONGO_CONNECTION"`
}

// URI renders the secret as a connection string.
func (s DBSecret) URI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s", s.Username, s.Password, s.MongoConnection)
}

// Complete reports whether every field required to build a URI is present.
func (s DBSecret) Complete() bool {
	return s.Username != "" && s.Password != "" && s.MongoConnection != ""
}

// Provider resolves the database credential for the process.
type Provider interface {
	DBSecret(ctx context.Context) (DBSecret, error)
}

// Manager is the Secrets Manager backed Provider.
type Manager struct {
	client *secretsmanager.Client
}

// NewManager builds a Provider for the given AWS region using the default
// credential chain.
func NewManager(ctx context.Context, region string) (*Manager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Manager{client: secretsmanager.NewFromConfig(cfg)}, nil
}

func (m *Manager) DBSecret(ctx context.Context) (DBSecret, error) {
	out, err := m.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws(secretName),
		VersionStage: aws("AWSCURRENT"),
	})
	if err != nil {
		return DBSecret{}, fmt.Errorf("get secret value: %w", err)
	}
	if out.SecretString == nil {
		return DBSecret{}, fmt.Errorf("secret %s has no string value", secretName)
	}
	var secret DBSecret
	if err := json.Unmarshal([]byte(*out.SecretString), &secret); err != nil {
		return DBSecret{}, fmt.Errorf("decode secret: %w", err)
	}
	return secret, nil
}

// Static is a canned Provider keyed by deployment region. It stands in for
// Secrets Manager when MOCK_SECRETS is set.
type Static struct {
	Region string
}

func (s Static) DBSecret(ctx context.Context) (DBSecret, error) {
	switch s.Region {
	case "stagingRegion":
		return DBSecret{
			Username:        "stagingUser",
			Password:        "stagingPassword",
			MongoConnection: "stagingMongoConnection",
		}, nil
	case "prodRegion":
		return DBSecret{
			Username:        "prodUser",
			Password:        "prodPassword",
			MongoConnection: "prodMongoConnection",
		}, nil
	default:
		return DBSecret{}, fmt.Errorf("no canned secret for region %q", s.Region)
	}
}

func aws(s string) *string { return &s }

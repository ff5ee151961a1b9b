package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/jordanlanch/namereport/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSecretsClient struct {
	secretsmanageriface.SecretsManagerAPI
	values map[string]string
	err    error
	calls  int
}

func (s *stubSecretsClient) GetSecretValueWithContext(_ aws.Context, in *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.values[aws.StringValue(in.SecretId)]
	if !ok {
		return nil, awserr.New(secretsmanager.ErrCodeResourceNotFoundException, "not found", nil)
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func TestEnvironmentManager_GetSecret(t *testing.T) {
	m := NewEnvironmentManager()
	ctx := context.Background()

	t.Setenv("NR_TEST_KEY", "direct")
	v, err := m.GetSecret(ctx, "NR_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "direct", v)

	path := filepath.Join(t.TempDir(), "card")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))
	t.Setenv("NR_TEST_FILE_KEY", "")
	t.Setenv("NR_TEST_FILE_KEY_FILE", path)
	v, err = m.GetSecret(ctx, "NR_TEST_FILE_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-file", v)

	_, err = m.GetSecret(ctx, "NR_TEST_ABSENT")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAWSSecretsManager_PrefixAndCache(t *testing.T) {
	client := &stubSecretsClient{values: map[string]string{"namereport/CARD_KEY": "s3cret"}}
	m := NewAWSSecretsManager(client, Config{Prefix: "namereport/", CacheDuration: time.Minute})

	for i := 0; i < 3; i++ {
		v, err := m.GetSecret(context.Background(), "CARD_KEY")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", v)
	}
	assert.Equal(t, 1, client.calls)

	_, err := m.GetSecret(context.Background(), "GEMINI_API_KEY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAWSSecretsManager_UpstreamError(t *testing.T) {
	client := &stubSecretsClient{err: errors.New("throttled")}
	m := NewAWSSecretsManager(client, DefaultConfig())

	_, err := m.GetSecret(context.Background(), "CARD_KEY")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewManager_UnknownBackend(t *testing.T) {
	_, err := NewManager(Config{Backend: "vault"})
	assert.Error(t, err)

	m, err := NewManager(Config{Backend: BackendEnv})
	require.NoError(t, err)
	assert.IsType(t, &EnvironmentManager{}, m)
}

func TestResolve_FillsOnlyEmptyFields(t *testing.T) {
	client := &stubSecretsClient{values: map[string]string{
		"DEEPSEEK_API_KEY": "sk-from-aws",
		"CARD_KEY":         "card-from-aws",
	}}
	cfg := &config.Config{CardKey: "card-from-env"}

	require.NoError(t, Resolve(context.Background(), NewAWSSecretsManager(client, DefaultConfig()), cfg, nil))

	assert.Equal(t, "sk-from-aws", cfg.DeepSeekAPIKey)
	assert.Equal(t, "card-from-env", cfg.CardKey)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestResolve_PropagatesBackendFailure(t *testing.T) {
	client := &stubSecretsClient{err: errors.New("access denied")}
	err := Resolve(context.Background(), NewAWSSecretsManager(client, DefaultConfig()), &config.Config{}, nil)
	assert.Error(t, err)
}

func TestConfigFromApp(t *testing.T) {
	c := ConfigFromApp(&config.Config{SecretsBackend: BackendAWS, SecretsAWSRegion: "ap-east-1", SecretsPrefix: "nr/"})
	assert.Equal(t, BackendAWS, c.Backend)
	assert.Equal(t, "ap-east-1", c.AWSRegion)
	assert.Equal(t, "nr/", c.Prefix)
	assert.Equal(t, 5*time.Minute, c.CacheDuration)
}

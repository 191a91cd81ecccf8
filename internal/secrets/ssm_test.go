package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

type fakeSSM struct {
	params map[string]string
	err    error
	calls  int
}

func (f *fakeSSM) GetParameter(ctx context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.params[aws.ToString(in.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{}
	}
	if in.WithDecryption == nil || !*in.WithDecryption {
		return nil, errors.New("expected WithDecryption")
	}
	return &ssm.GetParameterOutput{
		Parameter: &types.Parameter{Value: aws.String(v)},
	}, nil
}

func TestParamName(t *testing.T) {
	assert.Equal(t, "/album-manager/dev/hmac_key", ParamName("dev", KeyHMACKey))
	assert.Equal(t, "/album-manager/prod/paypal_webhook_id", ParamName("prod", KeyPayPalWebhookID))
}

func TestSSMProvider_Get(t *testing.T) {
	f := &fakeSSM{params: map[string]string{
		"/album-manager/dev/hmac_key": "topsecret",
	}}
	p := NewSSMProvider(f)

	v, err := p.Get(context.Background(), "/album-manager/dev/hmac_key")
	require.NoError(t, err)
	assert.Equal(t, "topsecret", v)
}

func TestSSMProvider_NotFound(t *testing.T) {
	p := NewSSMProvider(&fakeSSM{params: map[string]string{}})

	_, err := p.Get(context.Background(), "/album-manager/dev/missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSSMProvider_StoreFailureIsConfigurationError(t *testing.T) {
	p := NewSSMProvider(&fakeSSM{err: errors.New("throttled")})

	_, err := p.Get(context.Background(), "/album-manager/dev/hmac_key")
	assert.ErrorIs(t, err, common.ErrConfiguration)
	assert.NotErrorIs(t, err, common.ErrForbidden)
}

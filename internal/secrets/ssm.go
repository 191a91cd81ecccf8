package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

// SSMAPI is the subset of the SSM client used by the provider.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMProvider fetches parameters from Systems Manager Parameter Store.
// SecureString values are decrypted transparently.
type SSMProvider struct {
	client SSMAPI
}

func NewSSMProvider(client SSMAPI) *SSMProvider {
	return &SSMProvider{client: client}
}

func (p *SSMProvider) Get(ctx context.Context, name string) (string, error) {
	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("parameter %s: %w", name, common.ErrNotFound)
		}
		// Deliberately does not include the parameter value; the name is
		// operator-facing and safe to log.
		return "", fmt.Errorf("parameter %s unavailable: %w", name, common.ErrConfiguration)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value: %w", name, common.ErrConfiguration)
	}
	return *out.Parameter.Value, nil
}

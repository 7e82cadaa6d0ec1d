package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, name := range []string{ModelBlackScholes, ModelBlack76, ModelBinomialTree} {
		model, err := Get(name)

		require.NoError(t, err)
		require.NotNil(t, model)
	}

	_, err := Get("heston")
	require.Error(t, err)
}

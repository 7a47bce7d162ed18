package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryResolvesEveryFormat(t *testing.T) {
	f := NewFactory()
	for _, format := range []Format{JSON, HTML, CSV, Markdown, SARIF} {
		exp, err := f.New(format)
		require.NoError(t, err)
		assert.Equal(t, format, exp.Format())
	}
}

func TestFactoryUnknownFormatIsInvalidArgument(t *testing.T) {
	f := NewFactory()
	_, err := f.NewFromString("yaml")
	assert.Error(t, err)
}

func TestFactoryResolvesByExtension(t *testing.T) {
	f := NewFactory()
	exp, err := f.NewFromExtension(".htm")
	require.NoError(t, err)
	assert.Equal(t, HTML, exp.Format())
}

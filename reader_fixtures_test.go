package tripn

import (
	_ "embed"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quies-net/tripn/internal/ttlconfig"
)

//go:embed testdata/reader_cases.yaml
var readerCasesYAML []byte

func syntaxByName(name string) Syntax {
	switch name {
	case "trig":
		return SyntaxTriG
	case "ntriples":
		return SyntaxNTriples
	case "nquads":
		return SyntaxNQuads
	default:
		return SyntaxTurtle
	}
}

func TestReaderFixtureSuite(t *testing.T) {
	suite, err := ttlconfig.Load(readerCasesYAML)
	require.NoError(t, err)
	require.NotEmpty(t, suite.Cases)

	for _, tc := range suite.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			var opts []ReaderOption
			if tc.WantLax {
				opts = append(opts, WithReaderFlags(FlagLax))
			}
			stmts, _, status := ParseAll(strings.NewReader(tc.Document), syntaxByName(tc.Syntax), opts...)
			assert.Equal(t, Success, status)
			assert.Len(t, stmts, tc.WantCount)
		})
	}
}

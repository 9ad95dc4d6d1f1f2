package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	evaluators := map[string]Evaluate{
		"flat":     EvaluateFlat,
		"material": EvaluateMaterial,
	}

	for name, eval := range evaluators {
		t.Run(name+" scores decided positions", func(t *testing.T) {
			b := NewBoard()
			play(t, b,
				"a4-a3", "f5-f3",
				"a3-a4", "e5-f5",
				"a4-a3", "f5-f8",
				"a3-a4", "f8-i8",
			)
			require.Equal(t, WinningValue, eval(b), "King on the edge")

			noKing := mustParse(t, `
				- - - - - - - - -
				- - - - - - - - -
				- - - - - - - - -
				- - - - W - - - -
				- - - - - - - - -
				- - - - - - - - -
				- - - - B - - - -
				- - - - - - - - -
				- - - - - - - - -`, Attackers)
			require.Equal(t, -WinningValue, eval(noKing), "King captured")
		})
	}

	t.Run("flat is neutral unless the attackers outnumber the defenders", func(t *testing.T) {
		b := NewBoard()
		require.Equal(t, -WinningValue, EvaluateFlat(b), "Sixteen attackers against nine")

		even := mustParse(t, `
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - W - - - -
			- - - - K - - - -
			- - - - - - - - -
			- - - - B - - - -
			- - - - - - - - -
			- - - - - - - - -`, Attackers)
		require.Equal(t, 0, EvaluateFlat(even))
	})

	t.Run("material rewards an open king", func(t *testing.T) {
		boxed := mustParse(t, `
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - B - - - -
			- - - B K B - - -
			- - - - B - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -`, Defenders)
		open := mustParse(t, `
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - K - - - -
			- - - - - - - - -
			- B - - - - - B -
			- B - - - - - B -
			- - - - - - - - -`, Defenders)
		require.Equal(t, open.Count(Attackers), boxed.Count(Attackers))
		require.Greater(t, EvaluateMaterial(open), EvaluateMaterial(boxed))
		require.Less(t, EvaluateMaterial(open), WinningValue)
	})

	t.Run("material counts captured defenders", func(t *testing.T) {
		b := mustParse(t, `
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - - - - - -
			- - - - K - - - -
			- - - - - - - - -
			- B W - - - - - -
			- - - - - - - - -
			- - - B - - - - -`, Attackers)
		before := EvaluateMaterial(b)
		play(t, b, "d1-d3")
		require.Less(t, EvaluateMaterial(b), before, "Losing c3 favours the attackers")
	})
}

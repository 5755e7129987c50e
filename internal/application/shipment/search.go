package shipment

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer décompose (NFD), retire les marques diacritiques puis
// recompose (NFC). "Société Générale" et "societe generale" se replient sur
// la même clé.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold normalise une chaîne pour la recherche : minuscules, sans accents,
// sans espaces de tête ni de queue.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

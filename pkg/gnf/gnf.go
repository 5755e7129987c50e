// Package gnf formate les montants en francs guinéens pour l'affichage.
//
// Le franc guinéen n'a pas de subdivision en circulation : les montants sont
// des unités entières, groupées par milliers avec une espace insécable
// (convention fr-GN). Le groupement est fait à la main plutôt qu'avec
// x/text/message : le séparateur de milliers français a changé entre versions
// CLDR (U+00A0 puis U+202F) et les messages utilisateur doivent rester stables.
package gnf

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Separator espace insécable entre groupes de milliers.
const Separator = "\u00a0"

// FormatAmount renvoie le montant arrondi à l'unité, groupé par milliers.
// Exemples : 5000000 -> "5 000 000", -250000 -> "-250 000".
func FormatAmount(d decimal.Decimal) string {
	n := d.Round(0).IntPart()

	neg := n < 0
	if neg {
		n = -n
	}

	digits := []byte(strconv.FormatInt(n, 10))
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(Separator)
		}
		b.WriteByte(c)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatGNF renvoie le montant suivi de l'unité monétaire. L'unité est
// séparée par une espace simple : seul le groupement des milliers est
// insécable. Exemple : "2 000 000 GNF".
func FormatGNF(d decimal.Decimal) string {
	return FormatAmount(d) + " GNF"
}

package services

import "testing"

func TestStyleOptions_CoverInstallTable(t *testing.T) {
	// Every family/style the dropdowns offer must have an install code for
	// both height tiers, so a user can never configure an estimate the
	// labor selector cannot price.
	for family, styles := range StyleOptions {
		for _, style := range styles {
			for _, tall := range []bool{false, true} {
				if _, ok := installCodes[installKey{Family: family, Style: style, Tall: tall}]; !ok {
					t.Errorf("no install code for %s/%s tall=%v", family, style, tall)
				}
			}
		}
	}
}

func TestFamilyOptions_HaveStyles(t *testing.T) {
	for _, f := range FamilyOptions {
		if len(StyleOptions[f]) == 0 {
			t.Errorf("family %s has no style options", f)
		}
	}
}

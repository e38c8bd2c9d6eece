//
//  Copyright © Altinn. All rights reserved.
//

package delegation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatches(t *testing.T) {
	c := &Change{
		Type:             ChangeGrant,
		ResourceID:       "scan-app",
		MatchType:        MatchResourceRegistry,
		OfferedByPartyID: 50005545,
		CoveredByUserID:  20000490,
	}

	tests := []struct {
		name    string
		filter  Filter
		matches bool
	}{
		{"empty filter matches everything", Filter{}, true},
		{"offering party", Filter{OfferedByPartyIDs: []int{50005545}}, true},
		{"wrong offering party", Filter{OfferedByPartyIDs: []int{50002108}}, false},
		{"covered user", Filter{CoveredByUserIDs: []int{20000490}}, true},
		{"covered party does not match user-keyed change", Filter{CoveredByPartyIDs: []int{20000490}}, false},
		{"resource id", Filter{ResourceIDs: []string{"scan-app", "sensitive-register"}}, true},
		{"wrong resource id", Filter{ResourceIDs: []string{"sensitive-register"}}, false},
		{"match type", Filter{MatchType: MatchResourceRegistry}, true},
		{"wrong match type", Filter{MatchType: MatchAltinnApp}, false},
		{"combined dimensions", Filter{
			OfferedByPartyIDs: []int{50005545},
			CoveredByUserIDs:  []int{20000490},
			ResourceIDs:       []string{"scan-app"},
			MatchType:         MatchResourceRegistry,
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.filter.Matches(c))
		})
	}
}

package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMenuAction_ExactAliases(t *testing.T) {
	tests := []struct {
		input string
		want  menuAction
	}{
		{"1", actionAIInfo},
		{"ai", actionAIInfo},
		{"AI", actionAIInfo},
		{"  Machine Learning  ", actionAIInfo},
		{"2", actionWebInfo},
		{"website", actionWebInfo},
		{"3", actionBlockchainInfo},
		{"ELIXA", actionBlockchainInfo},
		{"4", actionVendraInfo},
		{"marketplace", actionVendraInfo},
		{"5", actionProductsInfo},
		{"6", actionPortfolioInfo},
		{"7", actionContactInfo},
		{"8", actionStartQuote},
		{"quote", actionStartQuote},
		{"9", actionAboutInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveMenuAction(tt.input))
		})
	}
}

func TestResolveMenuAction_NavigationKeywords(t *testing.T) {
	for _, input := range []string{"menu", "start", "main", "home", "MENU", " Home "} {
		assert.Equal(t, actionRootMenu, resolveMenuAction(input), "input %q", input)
	}
}

func TestResolveMenuAction_SubstringFallback(t *testing.T) {
	tests := []struct {
		input string
		want  menuAction
	}{
		{"i have a project for you", actionStartQuote},
		{"can i get an estimate please", actionStartQuote},
		{"i need a consultation", actionStartQuote},
		{"tell me about artificial intelligence", actionAIInfo},
		{"do you build websites?", actionWebInfo},
		{"interested in crypto stuff", actionBlockchainInfo},
		{"what is this vendra thing", actionVendraInfo},
		{"show me your case studies", actionPortfolioInfo},
		{"how do i reach you", actionContactInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveMenuAction(tt.input))
		})
	}
}

func TestResolveMenuAction_QuoteMarkersWinOverLaterTiers(t *testing.T) {
	// "web development project" contains both quote markers and the web
	// marker; the quote route is scanned first.
	assert.Equal(t, actionStartQuote, resolveMenuAction("web development project"))
}

func TestResolveMenuAction_DefaultIsRootMenu(t *testing.T) {
	for _, input := range []string{"hello", "asdfgh", "10", "0", "¯\\_(ツ)_/¯"} {
		assert.Equal(t, actionRootMenu, resolveMenuAction(input), "input %q", input)
	}
}

func TestMenuResponses_AllActionsHaveText(t *testing.T) {
	actions := []menuAction{
		actionRootMenu, actionAIInfo, actionWebInfo, actionBlockchainInfo,
		actionVendraInfo, actionProductsInfo, actionPortfolioInfo,
		actionContactInfo, actionAboutInfo,
	}
	for _, action := range actions {
		assert.NotEmpty(t, menuResponses[action], "action %d", action)
	}
}

package bot

import "strings"

// menuAction enumerates everything the main menu can do. Free text is
// canonicalized into one of these before any response is produced, so
// the alias table and the substring fallback can never disagree about
// precedence.
type menuAction int

const (
	actionRootMenu menuAction = iota
	actionAIInfo
	actionWebInfo
	actionBlockchainInfo
	actionVendraInfo
	actionProductsInfo
	actionPortfolioInfo
	actionContactInfo
	actionStartQuote
	actionAboutInfo
)

// Tier 1: exact matches after lower-casing and trimming. Numeric menu
// codes and their textual aliases land in the same table.
var menuAliases = map[string]menuAction{
	"1":                actionAIInfo,
	"ai":               actionAIInfo,
	"ml":               actionAIInfo,
	"machine learning": actionAIInfo,

	"2":       actionWebInfo,
	"web":     actionWebInfo,
	"website": actionWebInfo,
	"webdev":  actionWebInfo,

	"3":          actionBlockchainInfo,
	"blockchain": actionBlockchainInfo,
	"crypto":     actionBlockchainInfo,
	"elixa":      actionBlockchainInfo,

	"4":           actionVendraInfo,
	"vendra":      actionVendraInfo,
	"marketplace": actionVendraInfo,

	"5":        actionProductsInfo,
	"products": actionProductsInfo,
	"apps":     actionProductsInfo,

	"6":         actionPortfolioInfo,
	"portfolio": actionPortfolioInfo,
	"showcase":  actionPortfolioInfo,

	"7":       actionContactInfo,
	"contact": actionContactInfo,
	"support": actionContactInfo,

	"8":           actionStartQuote,
	"quote":       actionStartQuote,
	"get a quote": actionStartQuote,
	"estimate":    actionStartQuote,

	"9":     actionAboutInfo,
	"about": actionAboutInfo,
	"team":  actionAboutInfo,
}

// Tier 2: reserved navigation keywords always return the root menu,
// whatever state the session is in.
var navKeywords = map[string]bool{
	"menu":  true,
	"start": true,
	"main":  true,
	"home":  true,
}

// Tier 3: ordered substring markers. Scanned only when tiers 1 and 2
// miss, top to bottom, so the quote markers win over everything below.
var substringRoutes = []struct {
	markers []string
	action  menuAction
}{
	{[]string{"project", "quote", "development", "estimate", "consult"}, actionStartQuote},
	{[]string{"ai", "artificial", "machine"}, actionAIInfo},
	{[]string{"web", "website"}, actionWebInfo},
	{[]string{"blockchain", "crypto", "elixa"}, actionBlockchainInfo},
	{[]string{"vendra", "marketplace"}, actionVendraInfo},
	{[]string{"portfolio", "showcase", "case"}, actionPortfolioInfo},
	{[]string{"contact", "support", "reach"}, actionContactInfo},
	{[]string{"product", "app"}, actionProductsInfo},
}

// resolveMenuAction canonicalizes one line of free text into a menu
// action. Tier 4: anything unrecognized falls back to the root menu.
func resolveMenuAction(raw string) menuAction {
	input := strings.ToLower(strings.TrimSpace(raw))
	if action, ok := menuAliases[input]; ok {
		return action
	}
	if navKeywords[input] {
		return actionRootMenu
	}
	for _, route := range substringRoutes {
		for _, marker := range route.markers {
			if strings.Contains(input, marker) {
				return route.action
			}
		}
	}
	return actionRootMenu
}

const rootMenuText = `👋 Welcome to NovaCore Technologies!

We build software that moves businesses forward. Reply with a number or a keyword:

1️⃣ AI & Machine Learning
2️⃣ Web & Mobile Development
3️⃣ Blockchain Solutions (Elixa)
4️⃣ Vendra Marketplace
5️⃣ Our Products
6️⃣ Portfolio & Case Studies
7️⃣ Contact & Support
8️⃣ Request a Quote
9️⃣ About Us

Type *menu* at any time to come back here.`

var menuResponses = map[menuAction]string{
	actionRootMenu: rootMenuText,

	actionAIInfo: `🤖 *AI & Machine Learning*

We design and ship production AI systems: chat assistants, document intelligence, demand forecasting and custom model fine-tuning.

Typical engagements run from proof-of-concept (2-4 weeks) to full platform builds.

Reply *8* to request a quote, or *menu* for the main menu.`,

	actionWebInfo: `💻 *Web & Mobile Development*

Full-stack product development: responsive web apps, mobile apps (iOS/Android), admin dashboards and API backends.

We work in agile sprints with weekly demos.

Reply *8* to request a quote, or *menu* for the main menu.`,

	actionBlockchainInfo: `⛓️ *Blockchain Solutions — Elixa*

Elixa is our blockchain practice: smart contracts, tokenization, payment rails and audit-ready DeFi infrastructure.

Reply *8* to request a quote, or *menu* for the main menu.`,

	actionVendraInfo: `🛒 *Vendra Marketplace*

Vendra is our turnkey multi-vendor marketplace platform — storefronts, escrow payments, logistics integrations and vendor analytics, ready to launch under your brand.

Reply *8* to request a quote, or *menu* for the main menu.`,

	actionProductsInfo: `📦 *Our Products*

• Vendra — multi-vendor marketplace platform
• Elixa — blockchain payments & tokenization suite
• NovaDesk — customer support automation

Reply *4* for Vendra, *3* for Elixa, or *menu* for the main menu.`,

	actionPortfolioInfo: `🗂️ *Portfolio & Case Studies*

Browse our recent work at https://novacore.example/portfolio — fintech, retail, logistics and public sector case studies.

Reply *8* to request a quote, or *menu* for the main menu.`,

	actionContactInfo: `📞 *Contact & Support*

• Email: hello@novacore.example
• Phone/WhatsApp: +234 800 000 0000
• Office: 14 Admiralty Way, Lekki, Lagos

We reply within one business day. Reply *menu* for the main menu.`,

	actionAboutInfo: `🏢 *About NovaCore Technologies*

We are a product engineering studio in Lagos. Since 2019 we have shipped 60+ projects across Africa and Europe, from MVPs to enterprise platforms.

Reply *6* to see our portfolio, or *menu* for the main menu.`,
}

package share

// Platforms a journey can be shared to
const (
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

// Share intent endpoints
const (
	TwitterIntentURL  = "https://twitter.com/intent/tweet"
	FacebookSharerURL = "https://www.facebook.com/sharer/sharer.php"
)

// FallbackNFT fills {nft} for visitors who have not adopted anything yet
const FallbackNFT = "a heritage seed"

var templates = map[string]string{
	PlatformTwitter: "🌾 Proud to be part of preserving Filipino agricultural heritage! Just adopted {nft} and earned {tokens} Kalikhasan Tokens. " +
		"Join me at Binhi Heritage Museum! #FilipinoHeritage #NFT #Conservation",
	PlatformFacebook: "🌱 I'm on a mission to preserve Filipino agricultural heritage through the Binhi Heritage Museum! Just reached Level {level} and adopted {nft}. " +
		"Every NFT adoption supports real farmers and seed conservation. Join the movement!",
	PlatformInstagram: "🏛️ My heritage journey at Binhi Heritage Museum 🇵🇭\n\n🌾 Level {level} Heritage Explorer\n🎯 {nfts} NFTs adopted\n" +
		"🪙 {tokens} Kalikhasan Tokens\n🌱 Supporting real conservation efforts\n\n#BinhiHeritage #FilipinoAgriculture #NFT #Conservation",
}

// Passbook milestone thresholds
const (
	ExplorerQuestions = 3
	GuardianNFTs      = 5
	FirstAdoptionNFTs = 1
)

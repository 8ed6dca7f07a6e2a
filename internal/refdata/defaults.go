package refdata

// defaultBenignDomains is the Tranco top-100 list.
var defaultBenignDomains = []string{
	"google.com", "microsoft.com", "facebook.com", "amazonaws.com", "googleapis.com", "apple.com",
	"youtube.com", "ax-msedge.net", "cloudflare.com", "mail.ru", "instagram.com", "akamai.net",
	"gstatic.com", "twitter.com", "akamaiedge.net", "office.com", "dual-s-msedge.net", "dzen.ru",
	"live.com", "t-msedge.net", "linkedin.com", "azure.com", "fbcdn.net", "ln-msedge.net",
	"googletagmanager.com", "googlevideo.com", "amazon.com", "windowsupdate.com", "a-msedge.net", "akadns.net",
	"wikipedia.org", "microsoftonline.com", "doubleclick.net", "e2ro.com", "office.net", "github.com",
	"appsflyersdk.com", "googleusercontent.com", "gtld-servers.net", "sharepoint.com", "whatsapp.net", "bing.com",
	"fastly.net", "netflix.com", "trafficmanager.net", "wordpress.org", "windows.net", "workers.dev",
	"icloud.com", "aaplimg.com", "youtu.be", "pinterest.com", "googlesyndication.com", "apple-dns.net",
	"digicert.com", "yahoo.com", "skype.com", "domaincontrol.com", "tiktokcdn.com", "cloudfront.net",
	"msn.com", "whatsapp.com", "ntp.org", "goo.gl", "adobe.com", "vimeo.com",
	"spotify.com", "aiv-cdn.net", "gvt2.com", "roblox.com", "x.com", "tiktok.com",
	"cloudflare.net", "office365.com", "tiktokv.com", "msedge.net", "bit.ly", "wac-msedge.net",
	"zoom.us", "ytimg.com", "gvt1.com", "qq.com", "edgekey.net", "intuit.com",
	"wordpress.com", "a2z.com", "l-msedge.net", "gandi.net", "samsung.com", "mozilla.org",
	"cdn77.org", "google-analytics.com", "cloudflare-dns.com", "pv-cdn.net", "googleadservices.com", "nist.gov",
	"googledomains.com", "baidu.com", "nginx.org", "windows.com",
}

// defaultSuspiciousTLDs is the Netcraft list of TLDs with the highest share
// of phishing and malware hosting.
var defaultSuspiciousTLDs = []string{
	".black", ".shop", ".monster", ".green", ".fan", ".baby", ".cm",
	".blue", ".red", ".hair", ".pink", ".ren", ".skin", ".bid", ".wiki", ".edu",
	".makeup", ".ink", ".fit", ".motorcycles", ".quest", ".shopping", ".ltd",
	".kim", ".beauty", ".wang", ".gdn", ".qpon", ".xin", ".pet", ".cc", ".homes",
	".yachts", ".vip", ".help", ".loan", ".lol", ".autos", ".lat", ".boats",
	".college", ".icu", ".ooo", ".top", ".cyou", ".click", ".trade", ".town",
	".pictures", ".mobi",
}

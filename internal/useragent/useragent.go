// Package useragent provides the browser identity presented to the fuel price site.
package useragent

// Mobile is an iPhone Safari User-Agent. The site serves its compact price
// table only to mobile browsers.
const Mobile = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"

package currencyapi

import "strings"

// FlagURLTemplate renders a flag image URL from an ISO 3166 alpha-2 country code.
const FlagURLTemplate = "https://flagsapi.com/{countryCode}/flat/64.png"

// UnknownCountry is reported for currencies missing from the lookup table.
const UnknownCountry = "Unknown"

// currencyCountries maps ISO 4217 currency codes to the country whose flag represents them.
var currencyCountries = map[string]string{
	"USD": "US", "EUR": "EU", "GBP": "GB", "INR": "IN", "JPY": "JP",
	"AUD": "AU", "CAD": "CA", "AED": "AE", "CHF": "CH", "CNY": "CN",
	"NZD": "NZ", "SGD": "SG", "HKD": "HK", "SEK": "SE", "KRW": "KR",
	"NOK": "NO", "DKK": "DK", "ZAR": "ZA", "BRL": "BR", "RUB": "RU",
	"MXN": "MX", "MYR": "MY", "THB": "TH", "IDR": "ID", "PHP": "PH",
	"TRY": "TR", "PLN": "PL", "HUF": "HU", "CZK": "CZ", "ILS": "IL",
	"SAR": "SA", "QAR": "QA", "KWD": "KW", "BHD": "BH", "OMR": "OM",
	"VND": "VN", "EGP": "EG", "ARS": "AR", "CLP": "CL", "COP": "CO",
	"PEN": "PE", "PKR": "PK", "BDT": "BD", "LKR": "LK", "NGN": "NG",
	"GHS": "GH", "KES": "KE", "UGX": "UG", "TZS": "TZ", "MAD": "MA",
	"DZD": "DZ", "TND": "TN", "XAF": "CM", "XOF": "SN", "XCD": "AG",
	"BBD": "BB", "BMD": "BM", "BSD": "BS", "KYD": "KY", "TTD": "TT",
	"JMD": "JM", "BZD": "BZ", "FJD": "FJ", "PGK": "PG", "WST": "WS",
	"TOP": "TO", "MVR": "MV", "MNT": "MN", "MMK": "MM", "KHR": "KH",
	"LAK": "LA", "KZT": "KZ", "UZS": "UZ", "GEL": "GE", "AMD": "AM",
	"AZN": "AZ", "MOP": "MO", "TWD": "TW", "LBP": "LB", "JOD": "JO",
	"SYP": "SY", "IQD": "IQ", "AFN": "AF", "YER": "YE", "SDG": "SD",
	"SOS": "SO", "ETB": "ET", "MGA": "MG", "ZMW": "ZM", "BWP": "BW",
}

var countryNames = map[string]string{
	"US": "United States", "EU": "European Union", "GB": "United Kingdom", "IN": "India",
	"JP": "Japan", "AU": "Australia", "CA": "Canada", "AE": "United Arab Emirates",
	"CH": "Switzerland", "CN": "China", "NZ": "New Zealand", "SG": "Singapore",
	"HK": "Hong Kong", "SE": "Sweden", "KR": "South Korea", "NO": "Norway",
	"DK": "Denmark", "ZA": "South Africa", "BR": "Brazil", "RU": "Russia",
	"MX": "Mexico", "MY": "Malaysia", "TH": "Thailand", "ID": "Indonesia",
	"PH": "Philippines", "TR": "Turkey", "PL": "Poland", "HU": "Hungary",
	"CZ": "Czech Republic", "IL": "Israel", "SA": "Saudi Arabia", "QA": "Qatar",
	"KW": "Kuwait", "BH": "Bahrain", "OM": "Oman", "VN": "Vietnam",
	"EG": "Egypt", "AR": "Argentina", "CL": "Chile", "CO": "Colombia",
	"PE": "Peru", "PK": "Pakistan", "BD": "Bangladesh", "LK": "Sri Lanka",
	"NG": "Nigeria", "GH": "Ghana", "KE": "Kenya", "UG": "Uganda",
	"TZ": "Tanzania", "MA": "Morocco", "DZ": "Algeria", "TN": "Tunisia",
	"CM": "Cameroon", "SN": "Senegal", "AG": "Antigua and Barbuda", "BB": "Barbados",
	"BM": "Bermuda", "BS": "Bahamas", "KY": "Cayman Islands", "TT": "Trinidad and Tobago",
	"JM": "Jamaica", "BZ": "Belize", "FJ": "Fiji", "PG": "Papua New Guinea",
	"WS": "Samoa", "TO": "Tonga", "MV": "Maldives", "MN": "Mongolia",
	"MM": "Myanmar", "KH": "Cambodia", "LA": "Laos", "KZ": "Kazakhstan",
	"UZ": "Uzbekistan", "GE": "Georgia", "AM": "Armenia", "AZ": "Azerbaijan",
	"MO": "Macau", "TW": "Taiwan", "LB": "Lebanon", "JO": "Jordan",
	"SY": "Syria", "IQ": "Iraq", "AF": "Afghanistan", "YE": "Yemen",
	"SD": "Sudan", "SO": "Somalia", "ET": "Ethiopia", "MG": "Madagascar",
	"ZM": "Zambia", "BW": "Botswana",
}

// CountryFor returns the display country and flag URL for a currency code.
// Codes missing from the table yield UnknownCountry and an empty flag URL.
func CountryFor(code string) (country, flagURL string) {
	countryCode, ok := currencyCountries[code]
	if !ok {
		return UnknownCountry, ""
	}
	name, ok := countryNames[countryCode]
	if !ok {
		name = UnknownCountry
	}
	return name, strings.Replace(FlagURLTemplate, "{countryCode}", countryCode, 1)
}

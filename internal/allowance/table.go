package allowance

// defaults holds the statutory minimum of paid leave days per year by ISO
// 3166-1 alpha-2 code, excluding public holidays
var defaults = map[string]int{
	"AF": 20, // Afghanistan
	"AL": 28, // Albania
	"DZ": 30, // Algeria
	"AD": 31, // Andorra
	"AO": 22, // Angola
	"AG": 12, // Antigua and Barbuda
	"AR": 10, // Argentina
	"AM": 20, // Armenia
	"AU": 20, // Australia
	"AT": 25, // Austria
	"AZ": 21, // Azerbaijan
	"BS": 10, // The Bahamas
	"BH": 30, // Bahrain
	"BD": 10, // Bangladesh
	"BB": 15, // Barbados
	"BY": 24, // Belarus
	"BE": 20, // Belgium
	"BZ": 14, // Belize
	"BJ": 24, // Benin
	"BT": 9,  // Bhutan
	"BO": 15, // Bolivia
	"BA": 20, // Bosnia and Herzegovina
	"BW": 15, // Botswana
	"BR": 10, // Brazil
	"BN": 7,  // Brunei Darussalam
	"BG": 20, // Bulgaria
	"BF": 30, // Burkina Faso
	"BI": 17, // Burundi
	"CV": 22, // Cape Verde
	"KH": 18, // Cambodia
	"CM": 18, // Cameroon
	"CA": 10, // Canada
	"CF": 24, // Central African Republic
	"TD": 24, // Chad
	"CL": 15, // Chile
	"CN": 5,  // China
	"CO": 15, // Colombia
	"KM": 25, // Comoros
	"CD": 12, // Democratic Republic of Congo
	"CG": 26, // Republic of Congo
	"CR": 10, // Costa Rica
	"HR": 20, // Croatia
	"CU": 22, // Cuba
	"CY": 20, // Cyprus
	"CZ": 20, // Czech Republic
	"DK": 25, // Denmark
	"DJ": 25, // Djibouti
	"DM": 10, // Dominica
	"DO": 10, // Dominican Republic
	"EC": 11, // Ecuador
	"EG": 21, // Egypt
	"SV": 15, // El Salvador
	"GQ": 30, // Equatorial Guinea
	"ER": 12, // Eritrea
	"EE": 28, // Estonia
	"ET": 12, // Ethiopia
	"EU": 20, // European Union
	"FJ": 10, // Fiji
	"FI": 25, // Finland
	"FR": 25, // France
	"GA": 20, // Gabon
	"GM": 21, // Gambia
	"GE": 24, // Georgia
	"DE": 20, // Germany
	"GH": 15, // Ghana
	"GR": 20, // Greece
	"GD": 10, // Grenada
	"GT": 15, // Guatemala
	"GN": 22, // Guinea
	"GW": 22, // Guinea-Bissau
	"GY": 12, // Guyana
	"HT": 11, // Haiti
	"HN": 8,  // Honduras
	"HK": 7,  // Hong Kong SAR
	"HU": 20, // Hungary
	"IS": 24, // Iceland
	"IN": 25, // India
	"ID": 12, // Indonesia
	"IR": 26, // Iran
	"IQ": 20, // Iraq
	"IE": 20, // Ireland
	"IL": 12, // Israel
	"IT": 20, // Italy
	"CI": 20, // Ivory Coast
	"JM": 10, // Jamaica
	"JP": 10, // Japan
	"JE": 10, // Jersey
	"JO": 14, // Jordan
	"KZ": 24, // Kazakhstan
	"KE": 21, // Kenya
	"KI": 0,  // Kiribati
	"XK": 20, // Kosovo
	"KW": 30, // Kuwait
	"KG": 20, // Kyrgyzstan
	"LA": 15, // Laos
	"LV": 20, // Latvia
	"LB": 15, // Lebanon
	"LS": 12, // Lesotho
	"LR": 10, // Liberia
	"LY": 22, // Libya
	"LT": 20, // Lithuania
	"LU": 26, // Luxembourg
	"MG": 22, // Madagascar
	"MW": 18, // Malawi
	"MY": 8,  // Malaysia
	"MV": 22, // Maldives
	"ML": 22, // Mali
	"MT": 27, // Malta
	"MH": 0,  // Marshall Islands
	"MR": 15, // Mauritania
	"MU": 22, // Mauritius
	"MX": 6,  // Mexico
	"FM": 0,  // Micronesia
	"MD": 28, // Moldova
	"MC": 30, // Monaco
	"MN": 15, // Mongolia
	"ME": 20, // Montenegro
	"MA": 18, // Morocco
	"MZ": 12, // Mozambique
	"MM": 10, // Myanmar
	"NA": 24, // Namibia
	"NR": 0,  // Nauru
	"NP": 13, // Nepal
	"NL": 20, // Netherlands
	"NZ": 20, // New Zealand
	"NI": 15, // Nicaragua
	"NE": 30, // Niger
	"NG": 6,  // Nigeria
	"KP": 15, // North Korea
	"MK": 20, // North Macedonia
	"NO": 25, // Norway
	"OM": 30, // Oman
	"PK": 14, // Pakistan
	"PW": 0,  // Palau
	"PA": 30, // Panama
	"PG": 10, // Papua New Guinea
	"PY": 12, // Paraguay
	"PE": 30, // Peru
	"PH": 5,  // Philippines
	"PL": 20, // Poland
	"PT": 22, // Portugal
	"QA": 30, // Qatar
	"RO": 20, // Romania
	"RU": 20, // Russia
	"RW": 15, // Rwanda
	"KN": 12, // Saint Kitts and Nevis
	"LC": 14, // Saint Lucia
	"VC": 16, // Saint Vincent and the Grenadines
	"WS": 10, // Samoa
	"SM": 10, // San Marino
	"SA": 21, // Saudi Arabia
	"SN": 20, // Senegal
	"RS": 20, // Serbia
	"SC": 21, // Seychelles
	"SL": 18, // Sierra Leone
	"SG": 7,  // Singapore
	"SK": 20, // Slovakia
	"SI": 20, // Slovenia
	"SB": 15, // Solomon Islands
	"SO": 13, // Somalia
	"ZA": 15, // South Africa
	"KR": 15, // South Korea
	"SS": 20, // South Sudan
	"ES": 22, // Spain
	"LK": 20, // Sri Lanka
	"SD": 20, // Sudan
	"SR": 12, // Suriname
	"SZ": 10, // Swaziland
	"SE": 25, // Sweden
	"CH": 20, // Switzerland
	"SY": 24, // Syria
	"TW": 3,  // Taiwan
	"TZ": 20, // Tanzania
	"TH": 6,  // Thailand
	"TL": 12, // East Timor
	"TG": 22, // Togo
	"TO": 20, // Tonga
	"TT": 10, // Trinidad and Tobago
	"TN": 10, // Tunisia
	"TR": 12, // Turkey
	"UG": 15, // Uganda
	"UA": 24, // Ukraine
	"AE": 30, // United Arab Emirates
	"GB": 20, // United Kingdom
	"US": 10, // United States
	"UY": 20, // Uruguay
	"UZ": 15, // Uzbekistan
	"VU": 15, // Vanuatu
	"VE": 15, // Venezuela
	"VN": 12, // Vietnam
	"YE": 22, // Yemen
	"ZM": 20, // Zambia
	"ZW": 22, // Zimbabwe
}

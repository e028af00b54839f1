package consts

const (
	UA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	METADATA_URL          = "https://ayna-api.buddyxiptv.com/api/aynaott.json"
	SCHEDULE_URL_TEMPLATE = "https://cloudtv.akamaized.net/AynaOTT/BDcontent/channels/epg/652fcf82a2649538da6fc6e3_%s_minified_bundle.json"

	// day-month-year, zero padded
	SCHEDULE_DATE_FORMAT = "02-01-2006"
	SCHEDULE_DAYS        = 3

	TIME_FORMAT = "20060102150405 -0700"
	TIMEZONE    = "Asia/Dhaka"
	LANG        = "bn"

	OUTPUT_PATH    = "epg.xml"
	GENERATOR_NAME = "Bangladesh EPG Generator"
	GENERATOR_URL  = ""

	UNKNOWN_CHANNEL_ID   = "unknown_id"
	UNKNOWN_CHANNEL_NAME = "unknown_name"
	UNKNOWN_PROGRAM      = "Unknown Program"
	NO_DESCRIPTION       = "No description available"
)

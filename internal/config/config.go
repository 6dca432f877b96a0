package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client (Nominatim requires a descriptive agent).
var UserAgent = "Go-Panchanga/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Panchanga"
	AppID             = "com.github.tartampluch.go-panchanga"
	CommandName       = "go-panchanga"
	KeyringService    = "com.github.tartampluch.go-panchanga"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.toml"
	CacheDirName      = "cache"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig    = "config"
	FlagDebug     = "debug"
	FlagLogFormat = "log-format"
	FlagName      = "name"
	FlagDate      = "date"
	FlagTime      = "time"
	FlagPlace     = "place"
	FlagTZ        = "tz"
	FlagOffset    = "offset"
	FlagFormat    = "format"
	FlagLang      = "lang"
	FlagSource    = "source"
	FlagUser      = "user"
	FlagPort      = "port"
	FlagOutput    = "output"

	FlagDescConfig    = "Path to a TOML settings file"
	FlagDescDebug     = "Enable debug logging"
	FlagDescLogFormat = "Log output format: text or json"
	FlagDescName      = "Name of the person"
	FlagDescDate      = "Birth date (YYYY-MM-DD)"
	FlagDescTime      = "Birth time (HH:MM or HH:MM:SS)"
	FlagDescPlace     = "Birth place: city name or \"lat,lon\""
	FlagDescTZ        = "IANA timezone of the birth place (overrides the default)"
	FlagDescOffset    = "Explicit UTC offset in hours (overrides the timezone)"
	FlagDescFormat    = "Output format: text, json, yaml or ics"
	FlagDescLang      = "Language of the text preview (en, te)"
	FlagDescSource    = "vCard source: local .vcf path or http(s) URL"
	FlagDescUser      = "Username for the vCard source (password read from the keyring)"
	FlagDescPort      = "HTTP port of the chart server"
	FlagDescOutput    = "Write output to this file instead of stdout"

	CmdShortRoot  = "Vedic Panchanga and birth chart calculator"
	CmdLongRoot   = "Go Panchanga computes Tithi, Nakshatra, Yoga, Karana and Vara with their transition times, plus sidereal planetary placements, for a birth moment and place."
	CmdShortChart = "Compute the Panchanga and planetary placements for one birth moment"
	CmdShortBatch = "Compute charts for every contact with a birthday in a vCard source"
	CmdShortServe = "Serve charts over HTTP"

	VersionTemplate = "%s version %s\ncommit: %s\nbuilt: %s\n"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort          = "18081"
	DefaultLanguage      = "en"
	DefaultTimezone      = "Asia/Kolkata" // Fallback used when no zone is known for a place.
	DefaultHouseSystem   = 'P'            // Placidus.
	DefaultRefreshMin    = 60
	DefaultCacheTTL      = 30 * 24 * time.Hour
	DefaultGeocoderURL   = "https://nominatim.openstreetmap.org/search"
	DefaultBatchParallel = 4

	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"

	StrategyScan   = "scan"
	StrategyLinear = "linear"
)

// SupportedLanguages defines the list of available preview languages (ISO 639-1).
var SupportedLanguages = []string{"en", "te"}

// -----------------------------------------------------------------------------
// Panchanga Calculation Constants
// -----------------------------------------------------------------------------

const (
	// Mean daily motions used by the linear transition model (deg/day).
	SunMeanMotion  = 0.9856
	MoonMeanMotion = 13.176

	// BisectionIterations refines the linear estimate (sub-minute over a day).
	BisectionIterations = 12

	// TithiScanStep is one hour expressed in days; TithiScanSteps covers one day.
	TithiScanStep  = 1.0 / 24.0
	TithiScanSteps = 24

	// NakshatraScanStep is ~14.4 minutes; the cap covers three days, far beyond
	// the longest pada.
	NakshatraScanStep  = 0.01
	NakshatraScanSteps = 300

	// GenericScanStep/Steps apply when scanning is configured for Yoga or Karana.
	GenericScanStep  = 0.01
	GenericScanSteps = 300

	// TeluguYearEpoch is a Prabhava year (1927 is one cycle earlier).
	TeluguYearEpoch = 1987
	YearCycleLength = 60

	// SunriseAltitude is the standard altitude of the Sun's upper limb at rise/set
	// including refraction (degrees).
	SunriseAltitude   = -0.833
	RahuKaalamSegment = 8

	// SunEventDays bounds the sunrise search in UT days: enough for a rise
	// after the query and the set that follows it.
	SunEventDays = 3

	// Supported ephemeris range: 1800-01-01 to 2100-12-31.
	MinJulianDay = 2378496.5
	MaxJulianDay = 2488069.5

	// AbsPrecision rounds absolute longitudes to 4 decimals.
	AbsPrecision = 1e4
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateLayout          = "2006-01-02"
	TimeLayoutSeconds   = "15:04:05"
	TimeLayoutMinutes   = "15:04"
	EndTimeLayout       = "02-Jan-2006 03:04 PM"
	ClockLayout         = "03:04 PM"
	FormatEndTime       = "%s %s"
	FormatNextDay       = "%s (continues to next day)"
	FormatEndsThen      = "%s ends at %s, then %s begins"
	FormatContinues     = "%s continues all day"
	FormatPada          = "%s (Pada %d)"
	FormatDMS           = "%d°%02d'%05.2f\""
	FormatAbs           = "%.4f"
	FormatCoord         = "%.4f"
	FormatUTCZone       = "UTC%s%02d:%02d"
	FormatRange         = "%s - %s"
	FormatCoordPlace    = "%.4f,%.4f"
	FormatHashInput     = "%s|%s|%.6f|%.6f"
	FormatUID           = "%s-%s@%s"
	FormatFileStamp     = "20060102_150405"
	FormatExportName    = "%s_%s.%s"
	CoordSeparator      = ","
	DateFormatVCardFull = "20060102"
	DateFormatVCardTime = "20060102T150405"
	DateFormatVCardZ    = "20060102T150405Z"
	DateFormatISOLocal  = "2006-01-02T15:04:05"
	DateFormatISOMinute = "2006-01-02T15:04"
	DateFormatRFC3339   = time.RFC3339
	GeoURIPrefix        = "geo:"
	NoonTime            = "12:00:00"
)

// -----------------------------------------------------------------------------
// Downstream Record Keys
// -----------------------------------------------------------------------------

const (
	KeyName       = "NAME"
	KeyDate       = "DATE"
	KeyTime       = "TIME"
	KeyPlace      = "PLACE"
	KeyWeekday    = "WEEKDAY"
	KeyLat        = "LAT"
	KeyLong       = "LONG"
	KeyYear       = "TELUGU_YEAR"
	KeyTithi      = "TITHI"
	KeyTithiEnd   = "TITHI_END"
	KeyNakshatra  = "NAKSHATRA"
	KeyNakEnd     = "NAK_END"
	KeyKarana     = "KARANA"
	KeyKaranaEnd  = "KARANA_END"
	KeyYoga       = "YOGA"
	KeyYogaEnd    = "YOGA_END"
	KeySunrise    = "SUNRISE"
	KeySunset     = "SUNSET"
	KeyRahuKaalam = "RAHU_KAALAM"

	KeyPrefixLong = "LONG_"
	KeyPrefixAbs  = "ABS_"
	KeyPrefixSign = "SIGN_"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyPreviewTitle  = "preview_title"
	TKeyPlanetsTitle  = "planets_title"
	TKeyRasiTitle     = "rasi_title"
	TKeyLblName       = "lbl_name"
	TKeyLblDate       = "lbl_date"
	TKeyLblTime       = "lbl_time"
	TKeyLblPlace      = "lbl_place"
	TKeyLblWeekday    = "lbl_weekday"
	TKeyLblLat        = "lbl_lat"
	TKeyLblLong       = "lbl_long"
	TKeyLblYear       = "lbl_year"
	TKeyLblTithi      = "lbl_tithi"
	TKeyLblTithiEnd   = "lbl_tithi_end"
	TKeyLblNakshatra  = "lbl_nakshatra"
	TKeyLblNakEnd     = "lbl_nak_end"
	TKeyLblKarana     = "lbl_karana"
	TKeyLblKaranaEnd  = "lbl_karana_end"
	TKeyLblYoga       = "lbl_yoga"
	TKeyLblYogaEnd    = "lbl_yoga_end"
	TKeyLblSunrise    = "lbl_sunrise"
	TKeyLblSunset     = "lbl_sunset"
	TKeyLblRahuKaalam = "lbl_rahu_kaalam"
	TKeyColPlanet     = "col_planet"
	TKeyColLongitude  = "col_longitude"
	TKeyColAbs        = "col_abs_longitude"
	TKeyColSign       = "col_sign"
	TKeyContinues     = "val_continues"
	TKeyEvtEnds       = "event_element_ends" // Requires Element, Name
	TKeyEvtNext       = "event_element_next" // Requires Next
	TKeyCalName       = "calendar_name"      // Requires Name
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Panchanga//Engine//EN"
	ICalCalName   = "Panchanga"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gopanchanga"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropLocation    = "LOCATION"
	PropGeo         = "GEO"
	PropTrigger     = "TRIGGER"
	PropCategories  = "CATEGORIES"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardGEO  = "GEO"
	VCardTZ   = "TZ"

	DefaultICalRefresh = 1 * time.Hour
	FormatGeo          = "%.6f;%.6f"
	// FormatBirthSummary expects Name, Tithi, Nakshatra.
	FormatBirthSummary = "%s: %s, %s"
	FormatTransition   = "%s ends, %s begins"
	ICalCategory       = "Panchanga"
	UIDSuffixBirth     = "birth"


	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RequestTimeout      = 60 * time.Second
	RetryAfterSeconds   = "10"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	MaxGeocodeResponse  = 1 * 1024 * 1024
	SchemeHTTP          = "http"
	RetryAttempts       = 3
	RetryBaseDelay      = 500 * time.Millisecond
	RedisDialTimeout    = 3 * time.Second
	CacheFileExt        = ".json"
	CacheKeyGeocode     = "geocode"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteRoot     = "/"
	RouteHealth   = "/healthz"
	RouteChart    = "/api/chart"
	RouteChartICS = "/api/chart.ics"

	QueryName   = "name"
	QueryDate   = "date"
	QueryTime   = "time"
	QueryPlace  = "place"
	QueryTZ     = "tz"
	QueryOffset = "offset"
	QueryFormat = "format"

	NominatimParamQuery  = "q"
	NominatimParamFormat = "format"
	NominatimParamLimit  = "limit"
	NominatimFormatJSON  = "json"
	NominatimLimit       = "1"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAllow           = "Allow"
	AllowedMethods        = "GET, HEAD"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeText            = "text/plain; charset=utf-8"
	MimeYAML            = "application/yaml; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInputFormat       = "invalid date/time input"
	ErrCityNotFound      = "city not found"
	ErrGeocode           = "geocoding failed"
	ErrEphemeris         = "ephemeris unavailable"
	ErrTransitionMissing = "no transition within scan horizon"
	ErrUnknownBody       = "unknown body"
	ErrJulianRange       = "julian day outside supported range"
	ErrBadCoordinates    = "coordinates out of range"
	ErrNoSunEvent        = "sun does not rise or set within search window"
	ErrTimezone          = "unknown timezone"
	ErrEmptyPlace        = "place is empty"
	ErrZoneData          = "failed to load time zone boundaries"
	ErrGeocoderMissing   = "internal error: geocoder is not initialized"
	ErrEphemerisMissing  = "internal error: ephemeris is not initialized"
	ErrUnknownStrategy   = "configuration error: unknown transition strategy"
	ErrUnknownFormat     = "unknown output format"
	ErrUnknownCache      = "configuration error: unsupported cache backend"
	ErrSettingsLoad      = "failed to load settings file"
	ErrLocalPathEmpty    = "configuration error: vCard source is empty"
	ErrServerStartup     = "server startup failed"
	ErrServerShutdown    = "server shutdown failed"
	ErrPortRequired      = "server port is required"
	ErrInvalidURL        = "invalid URL structure"
	ErrProtocol          = "unsupported protocol scheme (http/https only)"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrEncode            = "failed to encode chart"
	ErrDateParse         = "unable to parse date"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrWriteResp         = "failed to write response body"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrCacheRead         = "cache read failed"
	ErrCacheWrite        = "cache write failed"
	ErrChartFailed       = "chart computation failed"
	ErrNoBirthTime       = "birthday has no usable date"
	ErrNoPlace           = "contact has no GEO or ADR"
	ErrFetcherMissing    = "internal error: fetcher is not initialized"
	ErrRequestBuild      = "failed to create request"
	ErrNetwork           = "network error during fetch"
	ErrStatus            = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgChartStart    = "Computing chart"
	MsgChartDone     = "Chart computed"
	MsgPositions     = "Sidereal positions resolved"
	MsgElement       = "Panchanga element computed"
	MsgOpenEnded     = "Element continues past scan horizon"
	MsgNoDayContext  = "Sunrise not found, day context omitted"
	MsgGeocodeLookup = "Geocoding place"
	MsgGeocodeCached = "Geocode cache hit"
	MsgGeocodeFound  = "Place resolved"
	MsgGeocodeStatus = "Geocoder returned error status"
	MsgZoneDataFail  = "Time zone boundaries unavailable, places use the default zone"
	MsgCacheFailed   = "Cache unavailable, continuing without it"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgFeedFailed    = "Feed refresh failed"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkipContact   = "Skipping contact without usable birth data"
	MsgBatchDone     = "Batch generation successful"
	MsgBatchSkip     = "Skipping contact, chart failed"
	MsgNoBirthClock  = "Birth time missing, defaulting to noon"
	MsgFetchStart    = "Initiating vCard download"
	MsgFetchStatus   = "Server returned error status"
	MsgFetchOK       = "vCards downloading"
	MsgDecodeDone    = "vCard source decoded"
	MsgCalendarDone  = "Calendar generated"
	MsgRendered      = "Output rendered"
	MsgOutputWritten = "Output written"
	MsgFeedDisabled  = "No vCard source configured, serving an empty feed"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgSettingsFound = "Settings loaded"
	MsgRetrying      = "Retrying after transient error"

	FallbackName      = "Unknown"
	FallbackContinues = "continues all day"

	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgOK           = "ok"
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyName      = "name"
	LogKeyPlace     = "place"
	LogKeyJD        = "jd"
	LogKeyElement   = "element"
	LogKeyIndex     = "index"
	LogKeyEnd       = "end"
	LogKeyBodies    = "bodies"
	LogKeyLat       = "lat"
	LogKeyLon       = "lon"
	LogKeyBackend   = "backend"
	LogKeyAttempt   = "attempt"
	LogKeyTotal     = "total_cards"
	LogKeyCharts    = "charts"
	LogKeyFailed    = "failed"
	LogKeyLength    = "content_length"
	LogKeySource    = "source"
	LogKeyEvents    = "events"
	LogKeyFormat    = "format"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompEngine    = "engine"
	CompResolver  = "resolver"
	CompGeocode   = "geocode"
	CompCache     = "cache"
	CompServer    = "server"
	CompWorker    = "worker"
	CompContacts  = "contacts"
	CompCalendar  = "calendar"
	CompRender    = "render"
	CompI18n      = "i18n"
	CompSettings  = "settings"
)

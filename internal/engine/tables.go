package engine

// Element table sizes. Each divides the circle into equal arcs.
const (
	TithiCount     = 30
	NakshatraCount = 27
	PadaCount      = NakshatraCount * 4
	YogaCount      = 27
	KaranaCount    = 60
	SignCount      = 12
)

var tithiNames = [TithiCount]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami", "Shashti",
	"Saptami", "Ashtami", "Navami", "Dashami", "Ekadashi", "Dwadashi",
	"Trayodashi", "Chaturdashi", "Purnima",
	"Pratipada (Krishna)", "Dwitiya (Krishna)", "Tritiya (Krishna)", "Chaturthi (Krishna)",
	"Panchami (Krishna)", "Shashti (Krishna)", "Saptami (Krishna)", "Ashtami (Krishna)",
	"Navami (Krishna)", "Dashami (Krishna)", "Ekadashi (Krishna)", "Dwadashi (Krishna)",
	"Trayodashi (Krishna)", "Chaturdashi (Krishna)", "Amavasya",
}

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu", "Pushya",
	"Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha",
	"Anuradha", "Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta",
	"Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

var yogaNames = [YogaCount]string{
	"Vishkumbha", "Preeti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda", "Sukarma", "Dhriti",
	"Shoola", "Ganda", "Vriddhi", "Dhruva", "Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata",
	"Variyana", "Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra", "Vaidhriti",
}

// Karana slots: 0 is fixed, 1..56 cycle through the movable seven, 57..59 are fixed.
var (
	karanaFirst   = "Kimstughna"
	karanaMovable = [7]string{"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti"}
	karanaLast    = [3]string{"Shakuni", "Chatushpada", "Naga"}
)

var signAbbrs = [SignCount]string{"Ar", "Ta", "Ge", "Cn", "Le", "Vi", "Li", "Sc", "Sg", "Cp", "Aq", "Pi"}

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var teluguYearNames = [60]string{
	"Prabhava", "Vibhava", "Śukla", "Pramōdyuta", "Prajōtpatti", "Āṅgīrasa", "Śrīmukha", "Bhava",
	"Yuva", "Dhāta", "Īśvara", "Bahudhānya", "Pramādhi", "Vikrama", "Vr̥ṣa", "Citrabhānu",
	"Svabhānu", "Tāraṇa", "Pārthiva", "Vyaya", "Sarvajittu", "Sarvadhāri", "Virōdhi", "Vikr̥ti",
	"Khara", "Nandana", "Vijaya", "Jaya", "Manmadha", "Durmukhi", "Hēvaḷambi", "Viḷambi",
	"Vikāri", "Śārvari", "Plava", "Śubhakr̥ttu", "Śōbhakr̥ttu", "Krōdhi", "Viśvāvasu", "Parābhava",
	"Plavaṅga", "Kīlaka", "Saumya", "Sādhāraṇa", "Virōdhikr̥ttu", "Paridhāvi", "Pramādīca", "Ānanda",
	"Rākṣasa", "Nala", "Piṅgaḷa", "Kāḷayukti", "Siddhārthi", "Raudri", "Durmati", "Dundubhi",
	"Rudhirōdgāri", "Raktākṣi", "Krōdhana", "Akṣaya",
}

// varaNames is indexed by time.Weekday (Sunday first).
var varaNames = [7]string{
	"Ravivara", "Somavara", "Mangalavara", "Budhavara", "Guruvara", "Shukravara", "Shanivara",
}

// rahuSegments holds the 1-based eighth of daytime ruled by Rahu, indexed by time.Weekday.
var rahuSegments = [7]int{8, 2, 7, 5, 6, 4, 3}

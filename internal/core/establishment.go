package core

// EstablishmentCategory 店家分類
type EstablishmentCategory string

const (
	CategoryNightclub  EstablishmentCategory = "Nightclub"
	CategoryBar        EstablishmentCategory = "Bar"
	CategoryGoGo       EstablishmentCategory = "GoGo"
	CategoryMassage    EstablishmentCategory = "Massage"
	CategoryRestaurant EstablishmentCategory = "Restaurant"
	CategoryOther      EstablishmentCategory = "Other"
)

// PrivilegedCategory 自由工作者唯一可掛靠的分類
const PrivilegedCategory = CategoryNightclub

// Categories contains all establishment categories
var Categories = []EstablishmentCategory{
	CategoryNightclub,
	CategoryBar,
	CategoryGoGo,
	CategoryMassage,
	CategoryRestaurant,
	CategoryOther,
}

// Zone 地圖分區
type Zone string

const (
	ZoneWalkingStreet Zone = "walking-street"
	ZoneLKMetro       Zone = "lk-metro"
	ZoneSoiBuakhao    Zone = "soi-buakhao"
	ZoneBeachRoad     Zone = "beach-road"
	ZoneTreeTown      Zone = "tree-town"
	ZoneJomtien       Zone = "jomtien"
)

var Zones = []Zone{
	ZoneWalkingStreet,
	ZoneLKMetro,
	ZoneSoiBuakhao,
	ZoneBeachRoad,
	ZoneTreeTown,
	ZoneJomtien,
}

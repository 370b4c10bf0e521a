package region

// Zone tags written by the generation stages.
const (
	TagLand  = "land"
	TagWater = "water"
	TagCity  = "city"

	TagBiomeOcean        = "biome_ocean"
	TagBiomeLake         = "biome_lake"
	TagBiomeLand         = "biome_land"
	TagBiomeIsland       = "biome_island"
	TagBiomeMountainPeak = "biome_mountain_peak"
	TagCityUrban         = "biome_city_urban"
	TagCityRural         = "biome_city_rural"
	TagSubBiomeCenter    = "subbiome_center"

	// Earlier naming scheme, still written alongside the biome_* tags.
	TagWaterOcean       = "water_ocean"
	TagWaterLake        = "water_lake"
	TagLandMain         = "land_main"
	TagLandIsland       = "land_island"
	TagLandMountainPeak = "land_mountain_peak"
)

// Zone types.
const (
	ZoneTypeLand  = "land"
	ZoneTypeWater = "water"
	ZoneTypeCity  = "city"
)

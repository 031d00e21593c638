package value

import "path"

const (
	resourcesDir      = "CodeFunCore/src/main/resources/net/easecation/codefuncore"
	CommodityTypesDir = resourcesDir + "/commodity/types"
	LotteryDir        = resourcesDir + "/lottery/notion"

	commodityCatalogFile = "commodity.json"
)

// CommodityCatalogPath is the project path of commodity.json.
func CommodityCatalogPath() string {
	return path.Join(CommodityTypesDir, commodityCatalogFile)
}

// WorkshopPath is the project path of a workshop type file.
func WorkshopPath(typeID string) string {
	return path.Join(CommodityTypesDir, typeID+".json")
}

// LotteryPath is the project path of a lottery config file.
func LotteryPath(key string) string {
	return path.Join(LotteryDir, key+".json")
}

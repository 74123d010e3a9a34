package domain

// Cities lists the cities offered by the submission form, in display order.
var Cities = []string{"杭州"}

// Districts maps each known city to its districts. Spots in cities absent
// from this map are accepted with any district.
var Districts = map[string][]string{
	"杭州": {
		"西湖区",
		"上城区",
		"拱墅区",
		"滨江区",
		"萧山区",
		"余杭区",
		"临平区",
		"钱塘区",
		"富阳区",
		"临安区",
		"桐庐县",
		"淳安县",
		"建德市",
	},
}

// ValidDistrict reports whether district belongs to city. Unknown cities
// accept any district.
func ValidDistrict(city, district string) bool {
	districts, ok := Districts[city]
	if !ok {
		return true
	}
	for _, d := range districts {
		if d == district {
			return true
		}
	}
	return false
}

var (
	DefaultCategories = []string{"爬山", "餐厅", "游玩"}
	DefaultAreas      = []string{"北京", "上海", "广州", "深圳", "杭州", "成都"}
)

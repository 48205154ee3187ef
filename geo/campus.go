package geo

// CampusStops returns the ten stops of the university ring-bus sample, in
// their canonical order. The slice is freshly allocated on every call.
func CampusStops() []Stop {
	return []Stop{
		{Name: "Mühendislik Fakültesi", Coordinates: Coordinates{Lat: 40.2255, Lng: 28.8821}},
		{Name: "İktisadi ve İdari Bilimler Fakültesi", Coordinates: Coordinates{Lat: 40.2238, Lng: 28.8854}},
		{Name: "Fen-Edebiyat Fakültesi", Coordinates: Coordinates{Lat: 40.2221, Lng: 28.8802}},
		{Name: "Tıp Fakültesi", Coordinates: Coordinates{Lat: 40.2203, Lng: 28.8879}},
		{Name: "Merkezi Kütüphane", Coordinates: Coordinates{Lat: 40.2242, Lng: 28.8785}},
		{Name: "Öğrenci Yurdu A", Coordinates: Coordinates{Lat: 40.2210, Lng: 28.8768}},
		{Name: "Öğrenci Yurdu B", Coordinates: Coordinates{Lat: 40.2194, Lng: 28.8829}},
		{Name: "Spor Kompleksi", Coordinates: Coordinates{Lat: 40.2178, Lng: 28.8796}},
		{Name: "Teknokent", Coordinates: Coordinates{Lat: 40.2270, Lng: 28.8872}},
		{Name: "Rektörlük Binası", Coordinates: Coordinates{Lat: 40.2230, Lng: 28.8830}},
	}
}

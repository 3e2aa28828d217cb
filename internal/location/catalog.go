package location

// popularCities is the curated catalog shown before any search: ten
// major Indian cities with their states, then five international ones.
// Country code drives the domestic/international grouping downstream.
var popularCities = []Place{
	{Name: "Mumbai", Country: "IN", State: "Maharashtra", Lat: 19.0760, Lon: 72.8777},
	{Name: "Delhi", Country: "IN", State: "Delhi", Lat: 28.7041, Lon: 77.1025},
	{Name: "Bangalore", Country: "IN", State: "Karnataka", Lat: 12.9716, Lon: 77.5946},
	{Name: "Hyderabad", Country: "IN", State: "Telangana", Lat: 17.3850, Lon: 78.4867},
	{Name: "Chennai", Country: "IN", State: "Tamil Nadu", Lat: 13.0827, Lon: 80.2707},
	{Name: "Kolkata", Country: "IN", State: "West Bengal", Lat: 22.5726, Lon: 88.3639},
	{Name: "Pune", Country: "IN", State: "Maharashtra", Lat: 18.5204, Lon: 73.8567},
	{Name: "Ahmedabad", Country: "IN", State: "Gujarat", Lat: 23.0225, Lon: 72.5714},
	{Name: "Jaipur", Country: "IN", State: "Rajasthan", Lat: 26.9124, Lon: 75.7873},
	{Name: "Lucknow", Country: "IN", State: "Uttar Pradesh", Lat: 26.8467, Lon: 80.9462},
	{Name: "New York", Country: "US", Lat: 40.7128, Lon: -74.0060},
	{Name: "London", Country: "GB", Lat: 51.5074, Lon: -0.1278},
	{Name: "Tokyo", Country: "JP", Lat: 35.6762, Lon: 139.6503},
	{Name: "Paris", Country: "FR", Lat: 48.8566, Lon: 2.3522},
	{Name: "Sydney", Country: "AU", Lat: -33.8688, Lon: 151.2093},
}

// PopularCities returns the curated city catalog. Pure and synchronous;
// the returned slice is a copy the caller may partition freely.
func PopularCities() []Place {
	return append([]Place(nil), popularCities...)
}

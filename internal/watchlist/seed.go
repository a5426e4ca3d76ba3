package watchlist

// SampleOwnerName is the display name given to the user created by [Service.SeedSampleData].
const SampleOwnerName = "Wu Han"

// AdminDisplayName is the placeholder name for a user created by [Service.ProvisionAdmin].
const AdminDisplayName = "Admin"

var sampleMovies = []MovieForm{
	{Title: "My Neighbor Totoro", Year: "1988"},
	{Title: "Dead Poets Society", Year: "1989"},
	{Title: "A Perfect World", Year: "1993"},
	{Title: "Leon", Year: "1994"},
	{Title: "Mahjong", Year: "1996"},
	{Title: "Swallowtail Butterfly", Year: "1996"},
	{Title: "King of Comedy", Year: "1999"},
	{Title: "Devils on the Doorstep", Year: "1999"},
	{Title: "WALL-E", Year: "2008"},
	{Title: "The Pork of Music", Year: "2012"},
}

// SampleMovies returns a copy of the movies written by [Service.SeedSampleData].
func SampleMovies() []MovieForm {
	return append([]MovieForm(nil), sampleMovies...)
}

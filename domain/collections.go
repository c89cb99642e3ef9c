package domain

const (
	CollectionSpotCollections = "spot_collections"
)

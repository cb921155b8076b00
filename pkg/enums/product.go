package enums

import "fmt"

// ProductCategory buckets the catalog.
type ProductCategory string

const (
	ProductCategoryBoys  ProductCategory = "boys"
	ProductCategoryGirls ProductCategory = "girls"
	ProductCategoryToys  ProductCategory = "toys"
)

var validProductCategories = []ProductCategory{
	ProductCategoryBoys,
	ProductCategoryGirls,
	ProductCategoryToys,
}

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductStatus gates catalog visibility.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

var validProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusInactive,
}

func (s ProductStatus) String() string {
	return string(s)
}

func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// AgeRange is the advisory age band printed on product listings.
type AgeRange string

const (
	AgeRangeZeroToSix   AgeRange = "0-6"
	AgeRangeSixToTwelve AgeRange = "6-12"
	AgeRangeOneToTwo    AgeRange = "1-2"
	AgeRangeTwoToThree  AgeRange = "2-3"
	AgeRangeAll         AgeRange = "all"
)

var validAgeRanges = []AgeRange{
	AgeRangeZeroToSix,
	AgeRangeSixToTwelve,
	AgeRangeOneToTwo,
	AgeRangeTwoToThree,
	AgeRangeAll,
}

func (a AgeRange) String() string {
	return string(a)
}

func (a AgeRange) IsValid() bool {
	for _, candidate := range validAgeRanges {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAgeRange converts raw input into an AgeRange.
func ParseAgeRange(value string) (AgeRange, error) {
	for _, candidate := range validAgeRanges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid age range %q", value)
}

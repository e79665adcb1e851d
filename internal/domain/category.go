package domain

type Category string

const (
	CategoryHealthcare   Category = "healthcare"
	CategoryPersonalCare Category = "personal care"
	CategoryEducation    Category = "education"
	CategoryHomeService  Category = "homeservice"
)

func Categories() []Category {
	return []Category{CategoryHealthcare, CategoryPersonalCare, CategoryEducation, CategoryHomeService}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealthcare, CategoryPersonalCare, CategoryEducation, CategoryHomeService:
		return true
	}
	return false
}

package repository

import "gorm.io/gorm"

// Page selects a window of a listing. A zero Limit means no paging.
type Page struct {
	Number int
	Limit  int
}

func (p Page) offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// paginate counts the rows matched by db and loads the requested window.
func paginate[T any](db *gorm.DB, page Page) ([]T, int64, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []T
	if err := db.Offset(page.offset()).Limit(page.Limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

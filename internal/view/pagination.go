package view

const MaxVisiblePages = 5

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Paginate возвращает страницу с номером page (с единицы). Номер вне диапазона
// прижимается к ближайшей существующей странице. Неположительный размер
// страницы означает одну страницу со всеми элементами.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	if pageSize <= 0 {
		pageSize = total
	}

	pages := TotalPages(total, pageSize)
	page = clamp(page, 1, pages)

	start := 0
	end := total
	if pageSize > 0 {
		start = (page - 1) * pageSize
		end = start + pageSize
		if end > total {
			end = total
		}
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
		StartIndex: start,
		EndIndex:   end,
	}
}

// PageWindow возвращает номера видимых кнопок страниц: не больше maxVisible,
// по возможности с текущей страницей в центре.
func PageWindow(current, totalPages, maxVisible int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if maxVisible < 1 {
		maxVisible = MaxVisiblePages
	}
	current = clamp(current, 1, totalPages)

	start, end := 1, totalPages
	if totalPages > maxVisible {
		start = clamp(current-maxVisible/2, 1, totalPages)
		end = start + maxVisible - 1
		if end > totalPages {
			end = totalPages
			start = end - maxVisible + 1
		}
	}

	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}

package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"storeadmin/internal/daterange"
	"storeadmin/internal/domain"
)

type OrderSource interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
}

type ProductSource interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type CategorySource interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
}

// RangeProvider yields the currently selected date range.
type RangeProvider interface {
	DateRange() daterange.Range
}

type DayCount struct {
	Day    string  `json:"day"`
	Orders int     `json:"orders"`
	Total  float64 `json:"total"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Products int    `json:"products"`
	Orders   int    `json:"orders"`
}

type Stats struct {
	Range           daterange.Range `json:"range"`
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    float64         `json:"totalRevenue"`
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
	StatusCounts    map[string]int  `json:"statusCounts"`
	OrdersPerDay    []DayCount      `json:"ordersPerDay"`
	Categories      []CategoryCount `json:"categories"`
	RecentOrders    []domain.Order  `json:"recentOrders"`
}

// StatsUseCase assembles the dashboard numbers. Orders, products and
// categories are all filtered by the selected date range.
type StatsUseCase struct {
	orders     OrderSource
	products   ProductSource
	categories CategorySource
	ranges     RangeProvider
	now        func() time.Time
	logger     *zap.Logger
}

func NewStatsUseCase(
	orders OrderSource,
	products ProductSource,
	categories CategorySource,
	ranges RangeProvider,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		orders:     orders,
		products:   products,
		categories: categories,
		ranges:     ranges,
		now:        time.Now,
		logger:     logger,
	}
}

const recentOrderCount = 5

func (uc *StatsUseCase) Compute(ctx context.Context) (*Stats, error) {
	orders, err := uc.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	selected := uc.ranges.DateRange()
	from, to, windowed := selected.Window(uc.now())

	stats := &Stats{
		Range:        selected,
		StatusCounts: make(map[string]int),
	}

	inProducts := products[:0:0]
	for _, p := range products {
		if windowed && !daterange.Contains(from, to, p.CreatedAt) {
			continue
		}
		inProducts = append(inProducts, p)
	}
	inCategories := categories[:0:0]
	for _, c := range categories {
		if windowed && !daterange.Contains(from, to, c.CreatedAt) {
			continue
		}
		inCategories = append(inCategories, c)
	}
	stats.TotalProducts = len(inProducts)
	stats.TotalCategories = len(inCategories)

	inOrders := orders[:0:0]
	perDay := make(map[string]*DayCount)
	for _, order := range orders {
		if windowed && !daterange.Contains(from, to, order.CreatedAt) {
			continue
		}
		inOrders = append(inOrders, order)

		stats.TotalOrders++
		stats.TotalRevenue += order.TotalPrice
		stats.StatusCounts[string(order.Status)]++

		day := order.CreatedAt.Format("2006-01-02")
		if dc, ok := perDay[day]; ok {
			dc.Orders++
			dc.Total += order.TotalPrice
		} else {
			perDay[day] = &DayCount{Day: day, Orders: 1, Total: order.TotalPrice}
		}

		// Orders arrive newest first, so the first few in range are
		// the most recent ones.
		if len(stats.RecentOrders) < recentOrderCount {
			stats.RecentOrders = append(stats.RecentOrders, order)
		}
	}

	stats.OrdersPerDay = make([]DayCount, 0, len(perDay))
	for _, dc := range perDay {
		stats.OrdersPerDay = append(stats.OrdersPerDay, *dc)
	}
	sort.Slice(stats.OrdersPerDay, func(i, j int) bool {
		return stats.OrdersPerDay[i].Day < stats.OrdersPerDay[j].Day
	})

	stats.Categories = countPerCategory(inCategories, inProducts, products, inOrders)

	return stats, nil
}

// countPerCategory counts, per in-range category, the in-range products
// belonging to it and the in-range orders containing at least one item
// from it. An order touching a category through several items still
// counts once. Cart items reference products by name, so the category
// of an item is resolved through the full product list, not just the
// windowed one. A category with no products or orders still appears
// with zeros.
func countPerCategory(categories []domain.Category, products, allProducts []domain.Product, orders []domain.Order) []CategoryCount {
	counts := make([]CategoryCount, len(categories))
	index := make(map[string]int, len(categories))
	for i, cat := range categories {
		counts[i] = CategoryCount{Category: cat.Name}
		index[cat.Name] = i
	}
	for _, p := range products {
		if i, ok := index[p.Category]; ok {
			counts[i].Products++
		}
	}

	productCategory := make(map[string]string, len(allProducts))
	for _, p := range allProducts {
		productCategory[p.Name] = p.Category
	}
	for _, order := range orders {
		seen := make(map[int]bool, len(counts))
		for _, item := range order.Items {
			i, ok := index[productCategory[item.ProductName]]
			if !ok || seen[i] {
				continue
			}
			seen[i] = true
			counts[i].Orders++
		}
	}
	return counts
}

package catalog

import "github.com/fairyhunter13/product-catalog-editor/internal/model"

// Reduce folds a into s and returns the resulting snapshot.
//
// Reduce never fails and never mutates s. Actions without a transition
// return s itself, so callers can compare pointers to detect a change.
// A nil s is treated as Initial().
func Reduce(s *State, a Action) *State {
	if s == nil {
		s = Initial()
	}
	switch a := a.(type) {
	case ToggleProductCode:
		return s.with(func(n *State) { n.ShowProductCode = !s.ShowProductCode })
	case SetCurrentProduct:
		return s.with(func(n *State) { n.CurrentProduct = Current(a.ProductID) })
	case InitializeCurrentProduct:
		return s.with(func(n *State) { n.CurrentProduct = Current(0) })
	case ClearCurrentProduct:
		return s.with(func(n *State) { n.CurrentProduct = NoCurrent() })
	case LoadProductsSuccess:
		// error is left as is: a successful reload keeps the last failure message.
		return s.with(func(n *State) { n.Products = cloneProducts(a.Products) })
	case LoadProductsFailure:
		return s.with(func(n *State) { n.Error = a.Error })
	case UpdateProductSuccess:
		return s.with(func(n *State) {
			n.Products = replaceProduct(s.Products, a.Product)
			n.Error = ""
		})
	case UpdateProductFailure:
		return s.with(func(n *State) { n.Error = a.Error })
	case CreateProductSuccess:
		return s.with(func(n *State) {
			n.Products = appendProduct(s.Products, a.Product)
			n.CurrentProduct = Current(a.Product.ID)
			n.Error = ""
		})
	case CreateProductFailure:
		return s.with(func(n *State) { n.Error = a.Error })
	case DeleteProductSuccess:
		return s.with(func(n *State) {
			n.Products = removeProduct(s.Products, a.ProductID)
			n.CurrentProduct = NoCurrent()
			n.Error = ""
		})
	case DeleteProductFailure:
		return s.with(func(n *State) { n.Error = a.Error })
	default:
		return s
	}
}

func cloneProducts(in []model.Product) []model.Product {
	out := make([]model.Product, len(in))
	copy(out, in)
	return out
}

func replaceProduct(in []model.Product, p model.Product) []model.Product {
	out := make([]model.Product, len(in))
	for i, item := range in {
		if item.ID == p.ID {
			out[i] = p
			continue
		}
		out[i] = item
	}
	return out
}

func appendProduct(in []model.Product, p model.Product) []model.Product {
	out := make([]model.Product, 0, len(in)+1)
	out = append(out, in...)
	return append(out, p)
}

func removeProduct(in []model.Product, id int) []model.Product {
	out := make([]model.Product, 0, len(in))
	for _, item := range in {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

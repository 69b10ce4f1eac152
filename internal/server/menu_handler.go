package server

import (
	"context"
	"net/http"

	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
)

const menuService = "MenuService"

type MenuSummary struct {
	menu.Menu
	ItemCount  int  `json:"itemCount"`
	InProgress bool `json:"inProgress"`
}

type ListMenusResponse struct {
	Menus []MenuSummary `json:"menus"`
}

type MenuResponse struct {
	Menu  *menu.Menu              `json:"menu"`
	Items []menu.ItemWithExercise `json:"items"`
}

type UpdateMenuRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	menu.UpdateInput
}

type AddItemRequest struct {
	MenuID     int64 `json:"menuId" validate:"required,gt=0"`
	ExerciseID int64 `json:"exerciseId" validate:"required,gt=0"`
}

type ItemResponse struct {
	Item *menu.Item `json:"item"`
}

type RemoveItemRequest struct {
	ItemID int64 `json:"itemId" validate:"required,gt=0"`
}

type ReorderRequest struct {
	MenuID int64              `json:"menuId" validate:"required,gt=0"`
	Orders []menu.OrderUpdate `json:"orders" validate:"required,min=1,dive"`
}

type UpdateGoalRequest struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Goal   menu.Goal `json:"goal"`
}

type RecentlyCompletedRequest struct {
	Limit int `json:"limit" validate:"gte=0"`
}

func (s *Server) registerMenuService(mux *http.ServeMux) {
	unary(mux, menuService, "List", s.listMenus)
	unary(mux, menuService, "Get", s.getMenu)
	unary(mux, menuService, "Create", s.createMenu)
	unary(mux, menuService, "Update", s.updateMenu)
	unary(mux, menuService, "Delete", s.deleteMenu)
	unary(mux, menuService, "Items", s.menuItems)
	unary(mux, menuService, "AddItem", s.addItem)
	unary(mux, menuService, "RemoveItem", s.removeItem)
	unary(mux, menuService, "Reorder", s.reorder)
	unary(mux, menuService, "UpdateGoal", s.updateGoal)
	unary(mux, menuService, "RecentlyCompleted", s.recentlyCompleted)
}

// listMenus returns every menu with its item count and whether a session is in progress.
func (s *Server) listMenus(ctx context.Context, _ *Empty) (*ListMenusResponse, error) {
	menus, err := s.menus.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(menus))
	for i, m := range menus {
		ids[i] = m.ID
	}
	active, err := progress.ActiveMenus(ctx, s.store, ids)
	if err != nil {
		return nil, err
	}
	inProgress := make(map[int64]bool, len(active))
	for _, id := range active {
		inProgress[id] = true
	}

	res := &ListMenusResponse{Menus: make([]MenuSummary, 0, len(menus))}
	for _, m := range menus {
		count, err := s.menus.ItemCount(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		res.Menus = append(res.Menus, MenuSummary{Menu: m, ItemCount: count, InProgress: inProgress[m.ID]})
	}
	return res, nil
}

func (s *Server) getMenu(ctx context.Context, req *IDRequest) (*MenuResponse, error) {
	m, err := s.menus.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.menus.Items(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &MenuResponse{Menu: m, Items: nonNil(items)}, nil
}

func (s *Server) createMenu(ctx context.Context, req *menu.CreateInput) (*MenuResponse, error) {
	m, err := s.menus.Create(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &MenuResponse{Menu: m, Items: []menu.ItemWithExercise{}}, nil
}

func (s *Server) updateMenu(ctx context.Context, req *UpdateMenuRequest) (*MenuResponse, error) {
	if err := s.menus.Update(ctx, req.ID, req.UpdateInput); err != nil {
		return nil, err
	}
	return s.getMenu(ctx, &IDRequest{ID: req.ID})
}

// deleteMenu removes the menu and any progress stored for it.
func (s *Server) deleteMenu(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := s.menus.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, progress.Key(req.ID)); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

type ItemsResponse struct {
	Items []menu.ItemWithExercise `json:"items"`
}

func (s *Server) menuItems(ctx context.Context, req *IDRequest) (*ItemsResponse, error) {
	if _, err := s.menus.FindByID(ctx, req.ID); err != nil {
		return nil, err
	}
	items, err := s.menus.Items(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &ItemsResponse{Items: nonNil(items)}, nil
}

func (s *Server) addItem(ctx context.Context, req *AddItemRequest) (*ItemResponse, error) {
	if _, err := s.menus.FindByID(ctx, req.MenuID); err != nil {
		return nil, err
	}
	if _, err := s.exercises.FindByID(ctx, req.ExerciseID); err != nil {
		return nil, err
	}
	item, err := s.menus.AddItem(ctx, req.MenuID, req.ExerciseID)
	if err != nil {
		return nil, err
	}
	return &ItemResponse{Item: item}, nil
}

func (s *Server) removeItem(ctx context.Context, req *RemoveItemRequest) (*Empty, error) {
	if err := s.menus.RemoveItem(ctx, req.ItemID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *Server) reorder(ctx context.Context, req *ReorderRequest) (*MenuResponse, error) {
	if err := s.menus.Reorder(ctx, req.MenuID, req.Orders); err != nil {
		return nil, err
	}
	return s.getMenu(ctx, &IDRequest{ID: req.MenuID})
}

func (s *Server) updateGoal(ctx context.Context, req *UpdateGoalRequest) (*ItemResponse, error) {
	if err := s.menus.UpdateGoal(ctx, req.ItemID, req.Goal); err != nil {
		return nil, err
	}
	item, err := s.menus.FindItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	return &ItemResponse{Item: item}, nil
}

func (s *Server) recentlyCompleted(ctx context.Context, req *RecentlyCompletedRequest) (*ListMenusResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 5
	}
	menus, err := s.menus.RecentlyCompleted(ctx, limit)
	if err != nil {
		return nil, err
	}
	res := &ListMenusResponse{Menus: make([]MenuSummary, 0, len(menus))}
	for _, m := range menus {
		res.Menus = append(res.Menus, MenuSummary{Menu: m})
	}
	return res, nil
}

package handler

import (
	"estimator/internal/app/ds"
	"estimator/internal/app/dto"
	"estimator/internal/app/estimate"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func itemsFromModel(rows []ds.EstimateItem) []estimate.Item {
	items := make([]estimate.Item, len(rows))
	for i, r := range rows {
		items[i] = estimate.Item{
			ID:          r.ItemKey,
			Category:    estimate.Category(r.Category),
			Name:        r.Name,
			Description: r.Description,
			Quantity:    r.Quantity,
			Unit:        r.Unit,
			UnitPrice:   r.UnitPrice,
			TotalPrice:  r.TotalPrice,
			IsDiscount:  r.IsDiscount,
		}
	}
	return items
}

func itemsToModel(items []estimate.Item) []ds.EstimateItem {
	rows := make([]ds.EstimateItem, len(items))
	for i, it := range items {
		rows[i] = ds.EstimateItem{
			Position:    i,
			ItemKey:     it.ID,
			Category:    string(it.Category),
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			IsDiscount:  it.IsDiscount,
		}
	}
	return rows
}

// itemFromRequest builds an item with a server-side total. Items without an
// id get a fresh one.
func itemFromRequest(req dto.ItemRequest) estimate.Item {
	it := estimate.Item{
		ID:          req.ID,
		Category:    estimate.Category(req.Category),
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		IsDiscount:  req.IsDiscount,
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.Recompute()
	return it
}

func itemsFromRequest(reqs []dto.ItemRequest) []estimate.Item {
	items := make([]estimate.Item, len(reqs))
	for i, r := range reqs {
		items[i] = itemFromRequest(r)
	}
	return items
}

// setItems stores items on the estimate and refreshes every derived amount.
func setItems(est *ds.Estimate, items []estimate.Item) estimate.Totals {
	totals := estimate.Aggregate(items, est.TaxRate)
	est.Items = itemsToModel(items)
	est.TotalAmount = totals.Subtotal
	est.TaxAmount = totals.TaxAmount
	est.FinalAmount = totals.FinalAmount
	est.NegotiationRate = totals.NegotiationRate
	return totals
}

func snapshotFromCompany(c *ds.Company) ds.CompanySnapshot {
	return ds.CompanySnapshot{
		ID:            c.ID,
		Name:          c.Name,
		Logo:          deref(c.Logo),
		Address:       c.Address,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		BizNo:         c.BizNo,
		BizType:       c.BizType,
		BizItem:       c.BizItem,
		BankName:      c.BankName,
		AccountNumber: c.AccountNumber,
		Signature:     deref(c.Signature),
		Stamp:         deref(c.Stamp),
	}
}

// attachCompany points the estimate at c, or detaches it when c is nil.
func attachCompany(est *ds.Estimate, c *ds.Company) {
	if c == nil {
		est.CompanyID = nil
		est.Company = datatypes.NewJSONType(ds.CompanySnapshot{})
		return
	}
	id := c.ID
	est.CompanyID = &id
	est.Company = datatypes.NewJSONType(snapshotFromCompany(c))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func companyToResponse(c ds.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Logo:          c.Logo,
		Address:       c.Address,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		BizNo:         c.BizNo,
		BizType:       c.BizType,
		BizItem:       c.BizItem,
		BankName:      c.BankName,
		AccountNumber: c.AccountNumber,
		Signature:     c.Signature,
		Stamp:         c.Stamp,
		IsDefault:     c.IsDefault,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func companyFromRequest(userID uint, req dto.CompanyRequest) *ds.Company {
	return &ds.Company{
		UserID:        userID,
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		Website:       req.Website,
		BizNo:         req.BizNo,
		BizType:       req.BizType,
		BizItem:       req.BizItem,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IsDefault:     req.IsDefault,
	}
}

func customerToResponse(c ds.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func snapshotToResponse(s ds.CompanySnapshot) *dto.CompanySnapshot {
	if s.ID == "" && s.Name == "" {
		return nil
	}
	out := dto.CompanySnapshot(s)
	return &out
}

func estimateToResponse(est *ds.Estimate) dto.EstimateResponse {
	items := itemsFromModel(est.Items)
	totals := estimate.Aggregate(items, est.TaxRate)
	savedAt, createdAt, updatedAt := est.SavedAt, est.CreatedAt, est.UpdatedAt

	return dto.EstimateResponse{
		ID:                est.ID,
		Title:             est.Title,
		TemplateID:        est.TemplateID,
		DisplayClientName: est.DisplayClientName,
		Client:            dto.ClientInfo(est.Client),
		CompanyID:         est.CompanyID,
		Company:           snapshotToResponse(est.Company.Data()),
		Items:             items,
		TotalAmount:       est.TotalAmount,
		TaxRate:           est.TaxRate,
		TaxAmount:         est.TaxAmount,
		FinalAmount:       est.FinalAmount,
		DiscountAmount:    totals.DiscountAmount,
		NegotiationRate:   est.NegotiationRate,
		ValidUntil:        est.ValidUntil,
		Notes:             est.Notes,
		SavedAt:           &savedAt,
		CreatedAt:         &createdAt,
		UpdatedAt:         &updatedAt,
	}
}

// draftToResponse renders an unsaved draft. It has no id and no timestamps.
func draftToResponse(d estimate.Draft, company *ds.Company) dto.EstimateResponse {
	resp := dto.EstimateResponse{
		Title:           d.Title,
		TemplateID:      d.TemplateID,
		Items:           d.Items,
		TotalAmount:     d.Totals.Subtotal,
		TaxRate:         d.TaxRate,
		TaxAmount:       d.Totals.TaxAmount,
		FinalAmount:     d.Totals.FinalAmount,
		DiscountAmount:  d.Totals.DiscountAmount,
		NegotiationRate: d.Totals.NegotiationRate,
		ValidUntil:      d.ValidUntil,
	}
	if company != nil {
		id := company.ID
		resp.CompanyID = &id
		resp.Company = snapshotToResponse(snapshotFromCompany(company))
	}
	return resp
}

func estimateToSummary(est ds.Estimate) dto.EstimateSummary {
	name := est.DisplayClientName
	if name == "" {
		name = est.Client.Name
	}
	return dto.EstimateSummary{
		ID:                est.ID,
		Title:             est.Title,
		DisplayClientName: name,
		FinalAmount:       est.FinalAmount,
		SavedAt:           est.SavedAt,
	}
}

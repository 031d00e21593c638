// Package mapper turns Notion pages into typed rows. Missing fields map to
// zero values; a field of the wrong type aborts the row with a
// property.ParseError.
package mapper

import (
	"fmt"
	"math"
	"strings"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/property"
)

const relationSeparator = ", "

// reader collects the first error so field mapping reads linearly.
type reader struct {
	page property.Page
	err  error
}

func (r *reader) fail(field string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("field %q: %w", field, err)
	}
}

func (r *reader) get(field string) (property.Property, bool) {
	p := r.page.Get(field)

	return p, p != nil
}

func (r *reader) rollup(field string) string {
	p, ok := r.get(field)
	if !ok {
		return ""
	}

	s, err := property.AsRollup(p)
	if err != nil {
		r.fail(field, err)
	}

	return s
}

func (r *reader) rollupBool(field string) bool {
	p, ok := r.get(field)
	if !ok {
		return false
	}

	b, err := property.AsRollupBool(p)
	if err != nil {
		r.fail(field, err)
	}

	return b
}

func (r *reader) checkbox(field string) bool {
	p, ok := r.get(field)
	if !ok {
		return false
	}

	b, err := property.AsCheckbox(p)
	if err != nil {
		r.fail(field, err)
	}

	return b
}

func (r *reader) number(field string) *float64 {
	p, ok := r.get(field)
	if !ok {
		return nil
	}

	n, err := property.AsNumber(p)
	if err != nil {
		r.fail(field, err)
	}

	return n
}

func (r *reader) richText(field string) string {
	p, ok := r.get(field)
	if !ok {
		return ""
	}

	s, err := property.AsRichText(p)
	if err != nil {
		r.fail(field, err)
	}

	if s == nil {
		return ""
	}

	return *s
}

func (r *reader) title(field string) string {
	p, ok := r.get(field)
	if !ok {
		return ""
	}

	s, err := property.AsTitle(p)
	if err != nil {
		r.fail(field, err)
	}

	return s
}

func (r *reader) selected(field string) string {
	p, ok := r.get(field)
	if !ok {
		return ""
	}

	s, err := property.AsSelect(p)
	if err != nil {
		r.fail(field, err)
	}

	if s == nil {
		return ""
	}

	return *s
}

func (r *reader) formulaText(field string) string {
	p, ok := r.get(field)
	if !ok {
		return ""
	}

	v, err := property.AsFormula(p)
	if err != nil {
		r.fail(field, err)
	}

	return v.Text()
}

// flat normalizes any property type. Used where the source column type is
// not fixed across databases.
func (r *reader) flat(field string) property.Value {
	return property.Normalize(r.page.Get(field))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, relationSeparator)
	out := parts[:0]

	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

// LotteryRow maps a row of the lottery database.
func LotteryRow(page property.Page) (entity.LotteryRow, error) {
	r := &reader{page: page}

	row := entity.LotteryRow{
		PageID:            page.ID,
		ExchangeID:        r.rollup("exchange_id"),
		NeedsKey:          r.rollupBool("需要钥匙？"),
		FallbackThreshold: int(math.Trunc(r.flat("whenCallFallback").Float())),
		ShowInWiki:        r.rollupBool("展示到wiki？"),
		WikiDisplayName:   r.rollup("wikiDisplayName"),
		GainExchangeID:    r.rollup("gainExchangeID"),
		Weight:            r.flat("权重").Float(),
		Quantity:          r.flat("数量").Float(),
		FullItemID:        r.rollup("商品全称"),
		IsPity:            r.checkbox("保底？"),
		WikiItemName:      r.rollup("wikiDisplayItemName"),
		Disabled:          r.checkbox("禁用"),
	}

	switch box := page.Get("所在抽奖箱").(type) {
	case nil:
	case property.Relation:
		row.BoxIDs = box.IDs
	case property.RichText, property.Title:
		row.BoxName = property.Normalize(box).Text()
	default:
		r.fail("所在抽奖箱", &property.ParseError{
			Op: "parseBox", Want: property.KindRelation, Got: box.Kind(), Raw: box.Raw(),
		})
	}

	if r.err != nil {
		return entity.LotteryRow{}, r.err
	}

	return row, nil
}

// BoxConfigRow maps a row of the box config database. The name column is
// either a relation or plain text.
func BoxConfigRow(page property.Page) (entity.BoxConfigRow, error) {
	r := &reader{page: page}

	row := entity.BoxConfigRow{
		PageID:     page.ID,
		ID:         r.flat("抽奖箱id").Text(),
		OpenMethod: r.flat("抽奖箱开启方式/次").Text(),
		Fallback:   r.flat("保底").Text(),
		Disabled:   r.flat("禁用").Truthy(),
	}

	if p, ok := r.get("抽奖箱名称"); ok {
		if rel, isRel := p.(property.Relation); isRel {
			name, err := property.AsRelation(rel)
			if err != nil {
				r.fail("抽奖箱名称", err)
			}

			row.Name = name
		} else {
			row.Name = property.Normalize(p).Text()
		}
	}

	if r.err != nil {
		return entity.BoxConfigRow{}, r.err
	}

	return row, nil
}

// CommodityRow maps a row of the commodity database. Every column is
// flattened since the catalog only needs text.
func CommodityRow(page property.Page) (entity.CommodityRow, error) {
	r := &reader{page: page}

	return entity.CommodityRow{
		TypeID:          r.flat("typeId").Text(),
		TranslateKey:    r.flat("translateKey").Text(),
		WikiDisplayName: r.flat("wikiDisplayName").Text(),
		FallbackItemID:  r.flat("fallback完整商品ID").Text(),
		FallbackCount:   r.flat("fallback商品数量").Text(),
	}, nil
}

// WorkshopRow maps a row of the workshop database.
func WorkshopRow(page property.Page) (entity.WorkshopRow, error) {
	r := &reader{page: page}

	row := entity.WorkshopRow{
		Category:         r.rollup("category"),
		IDItem:           r.richText("idItem"),
		OrnamentPart:     r.selected("4D装扮部位"),
		ImageSizeX:       r.number("imageSize-x"),
		ImageSizeY:       r.number("imageSize-y"),
		OffsetX:          r.number("offset-x"),
		OffsetY:          r.number("offset-y"),
		SuitIDItem:       r.richText("suit iditem"),
		DiscountRate:     r.number("折扣率 - 默认1 - 优先采用"),
		Rarity:           r.selected("稀有度（新）"),
		ImageMask:        r.checkbox("imageMask"),
		Scale:            r.number("scale"),
		OnlineState:      r.selected("上线状态"),
		Price:            r.number("价格"),
		PriceUnit:        r.selected("价格单位"),
		UseFullPreview:   r.checkbox("使用原图Preview"),
		Name:             r.title("名称"),
		FullID:           r.formulaText("商品完整ID"),
		ShopImage:        r.richText("商店图片"),
		HideToNotOwned:   r.checkbox("对未拥有玩家隐藏"),
		DiscountPrice:    r.number("折后价格"),
		WeaponSkinItemID: r.richText("武器皮肤自定义物品ID"),
		Access:           r.richText("获取方式"),
		AccessAction:     r.richText("获取方式配置"),
		ConfirmIntroduce: r.richText("购买确认页简介"),
		FallbackExchange: r.richText("fallbackExchange"),
	}

	if r.err != nil {
		return entity.WorkshopRow{}, r.err
	}

	return row, nil
}

// SplitRelation splits a joined relation value into ids.
func SplitRelation(s string) []string {
	return splitList(s)
}

package estimate

import (
	"errors"

	"github.com/shopspring/decimal"
)

// TemplateCategory classifies catalog templates by project type.
type TemplateCategory string

const (
	TemplateBudget         TemplateCategory = "budget"
	TemplateTVC            TemplateCategory = "tvc"
	TemplateMotion         TemplateCategory = "motion"
	TemplateCorporate      TemplateCategory = "corporate"
	TemplateSNS            TemplateCategory = "sns"
	TemplateYouTube        TemplateCategory = "youtube"
	TemplatePlanning       TemplateCategory = "planning"
	TemplateProduction     TemplateCategory = "production"
	TemplatePostProduction TemplateCategory = "postProduction"
	TemplateAI             TemplateCategory = "ai"
)

// BlankTemplateID starts an estimate without any line items.
const BlankTemplateID = "blank"

var ErrTemplateNotFound = errors.New("template not found")

// Template is a pre-filled bundle of line items for a common project type.
type Template struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    TemplateCategory `json:"category"`
	Items       []Item           `json:"items"`
	TotalAmount float64          `json:"total_amount"`
}

var catalog = buildCatalog()

// Catalog returns a copy of the built-in templates in display order.
func Catalog() []Template {
	out := make([]Template, len(catalog))
	for i, t := range catalog {
		out[i] = t
		out[i].Items = CloneItems(t.Items)
	}
	return out
}

// FindTemplate looks a template up by id. The returned template owns its items.
func FindTemplate(id string) (Template, error) {
	for _, t := range catalog {
		if t.ID == id {
			t.Items = CloneItems(t.Items)
			return t, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

func buildCatalog() []Template {
	templates := []Template{
		{
			ID:          "budget-template",
			Name:        "대략의 예산 범위만",
			Description: "정확한 견적이 아닌 대략적인 예산 범위를 제시할 때 사용",
			Category:    TemplateBudget,
			Items: []Item{
				line("budget-1", CategoryPlanning, "기획 및 컨셉 개발", "프로젝트 기획, 스토리보드, 컨셉 개발", 1, UnitCase, 500000),
				line("budget-2", CategoryProduction, "촬영 및 제작", "기본 촬영, 연출, 장비 및 인력", 1, UnitCase, 1500000),
				line("budget-3", CategoryPostProduction, "후반 제작", "편집, 색보정, 사운드 믹싱", 1, UnitCase, 800000),
				aiLine("budget-ai"),
			},
		},
		{
			ID:          "tvc-template",
			Name:        "대형 프로젝트 (TVC, 웹CF 등)",
			Description: "TV 광고, 웹 광고 등 대형 프로젝트 제작 시 사용",
			Category:    TemplateTVC,
			Items: []Item{
				line("tvc-1", CategoryPlanning, "기획 및 컨셉 개발", "브랜드 분석, 타겟 분석, 컨셉 개발", 1, UnitCase, 800000),
				line("tvc-2", CategoryPlanning, "스토리보드 제작", "상세 스토리보드 및 시각화", 1, UnitCase, 600000),
				line("tvc-3", CategoryProduction, "프리프로덕션", "캐스팅, 로케이션 스카우팅, 장비 준비", 1, UnitCase, 500000),
				line("tvc-4", CategoryProduction, "촬영 (1일)", "감독, 촬영감독, 카메라맨, 조명, 음향", 1, UnitDay, 3000000),
				line("tvc-5", CategoryProduction, "추가 촬영일", "추가 촬영이 필요한 경우", 0, UnitDay, 2500000),
				line("tvc-6", CategoryPostProduction, "편집", "기본 편집 및 컷 편집", 1, UnitCase, 1200000),
				line("tvc-7", CategoryPostProduction, "색보정", "프로페셔널 색보정", 1, UnitCase, 800000),
				line("tvc-8", CategoryPostProduction, "사운드 믹싱", "음향 편집 및 믹싱", 1, UnitCase, 600000),
				aiLine("tvc-ai"),
			},
		},
		{
			ID:          "motion-template",
			Name:        "모션그래픽 위주 제작",
			Description: "모션그래픽이 주가 되는 프로젝트 제작 시 사용",
			Category:    TemplateMotion,
			Items: []Item{
				line("motion-1", CategoryPlanning, "기획 및 스토리보드", "모션그래픽 기획 및 스토리보드", 1, UnitCase, 400000),
				line("motion-2", CategoryProduction, "그래픽 디자인", "키비주얼 및 그래픽 요소 디자인", 1, UnitCase, 600000),
				line("motion-3", CategoryPostProduction, "모션그래픽 제작", "After Effects, Cinema 4D 등 모션그래픽 제작", 1, UnitCase, 1500000),
				line("motion-4", CategoryPostProduction, "추가 모션그래픽", "복잡한 모션그래픽 요소 추가", 0, UnitCase, 800000),
				line("motion-5", CategoryPostProduction, "사운드 디자인", "모션그래픽용 사운드 디자인", 1, UnitCase, 400000),
				aiLine("motion-ai"),
			},
		},
		{
			ID:          "corporate-template",
			Name:        "홍보영상 일반 (실사 포함)",
			Description: "기업 홍보영상, 제품 소개영상 등 실사 촬영 포함",
			Category:    TemplateCorporate,
			Items: []Item{
				line("corporate-1", CategoryPlanning, "기획 및 인터뷰 준비", "기업 분석, 인터뷰 질문지 작성", 1, UnitCase, 300000),
				line("corporate-2", CategoryProduction, "실사 촬영 (반일)", "기업 시설, 제품, 인터뷰 촬영", 1, UnitHalfDay, 800000),
				line("corporate-3", CategoryProduction, "추가 촬영", "추가 촬영이 필요한 경우", 0, UnitHalfDay, 600000),
				line("corporate-4", CategoryPostProduction, "편집", "기본 편집 및 자막 작업", 1, UnitCase, 700000),
				line("corporate-5", CategoryPostProduction, "색보정", "기본 색보정", 1, UnitCase, 400000),
				line("corporate-6", CategoryPostProduction, "사운드 편집", "음향 편집 및 믹싱", 1, UnitCase, 300000),
				line("corporate-7", CategoryPostProduction, "2D 모션그래픽", "2D 모션그래픽 제작", 1, UnitCase, 800000),
				line("corporate-8", CategoryPostProduction, "3D 모션그래픽", "3D 모션그래픽 제작", 1, UnitCase, 1500000),
				aiLine("corporate-ai"),
			},
		},
		{
			ID:          "sns-template",
			Name:        "SNS 광고/바이럴 영상",
			Description: "SNS, 인스타그램, 페이스북, 틱톡 등 바이럴 영상 제작에 최적화",
			Category:    TemplateSNS,
			Items: []Item{
				line("sns-1", CategoryPlanning, "기획 및 스토리보드", "SNS 특화 기획 및 스토리보드", 1, UnitCase, 300000),
				line("sns-2", CategoryProduction, "촬영 및 제작", "SNS 최적화 촬영, 연출, 장비", 1, UnitCase, 700000),
				line("sns-3", CategoryPostProduction, "편집 및 자막", "SNS용 편집, 자막, 효과", 1, UnitCase, 400000),
				aiLine("sns-ai"),
			},
		},
		{
			ID:          "youtube-template",
			Name:        "유튜브 영상 제작",
			Description: "유튜브 채널, 브이로그, 리뷰, 인터뷰 등 다양한 포맷 지원",
			Category:    TemplateYouTube,
			Items: []Item{
				line("youtube-1", CategoryPlanning, "기획 및 콘티", "유튜브 영상 기획, 콘티 작성", 1, UnitCase, 250000),
				line("youtube-2", CategoryProduction, "촬영", "유튜브 촬영, 장비, 인력", 1, UnitCase, 600000),
				line("youtube-3", CategoryPostProduction, "편집 및 썸네일", "유튜브용 편집, 썸네일 디자인", 1, UnitCase, 350000),
				aiLine("youtube-ai"),
			},
		},
		{
			ID:          "planning-template",
			Name:        "기획 전용 템플릿",
			Description: "기획 단계만 별도로 견적할 때 사용",
			Category:    TemplatePlanning,
			Items: []Item{
				line("planning-1", CategoryPlanning, "기획 및 컨셉 개발", "프로젝트 기획, 컨셉, 스토리보드", 1, UnitCase, 500000),
				line("planning-2", CategoryPlanning, "회의 및 커뮤니케이션", "고객 미팅, 자료조사, 커뮤니케이션", 1, UnitCase, 200000),
				aiLine("planning-ai"),
			},
		},
		{
			ID:          "production-template",
			Name:        "제작 전용 템플릿",
			Description: "촬영/제작 단계만 별도로 견적할 때 사용",
			Category:    TemplateProduction,
			Items: []Item{
				line("production-1", CategoryProduction, "촬영", "촬영 인력, 장비, 장소 대여", 1, UnitCase, 1200000),
				line("production-2", CategoryProduction, "연출 및 진행", "감독, 연출, 현장 진행", 1, UnitCase, 800000),
				aiLine("production-ai"),
			},
		},
		{
			ID:          "postproduction-template",
			Name:        "후반제작 전용 템플릿",
			Description: "편집/후반제작 단계만 별도로 견적할 때 사용",
			Category:    TemplatePostProduction,
			Items: []Item{
				line("post-1", CategoryPostProduction, "편집", "컷 편집, 색보정, 사운드 믹싱", 1, UnitCase, 700000),
				line("post-2", CategoryPostProduction, "자막/그래픽 추가", "자막, 그래픽, 효과 추가", 1, UnitCase, 300000),
				aiLine("post-ai"),
			},
		},
	}

	for i := range templates {
		sum := decimal.Zero
		for _, it := range templates[i].Items {
			sum = sum.Add(decimal.NewFromFloat(it.TotalPrice))
		}
		templates[i].TotalAmount = sum.InexactFloat64()
	}
	return templates
}

func line(id string, c Category, name, desc string, qty float64, unit string, price float64) Item {
	it := Item{
		ID:          id,
		Category:    c,
		Name:        name,
		Description: desc,
		Quantity:    qty,
		Unit:        unit,
		UnitPrice:   price,
	}
	it.Recompute()
	return it
}

func aiLine(id string) Item {
	return line(id, CategoryAI, "AI 생성", "AI 생성, 활용", 1, UnitCase, 100000)
}

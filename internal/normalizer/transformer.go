package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"applyhome/internal/models"
)

type fieldSpec struct {
	label string
	keys  []string
	set   func(*models.Listing, string)
}

// fields lists every source-backed column. Category and ReceptionEndDate are filled separately.
var fields = []fieldSpec{
	{"주택관리번호", []string{"HOUSE_MANAGE_NO"}, func(l *models.Listing, v string) { l.HouseManageNo = v }},
	{"공고번호", []string{"PBLANC_NO"}, func(l *models.Listing, v string) { l.PblancNo = v }},
	{"주택명", []string{"HOUSE_NM"}, func(l *models.Listing, v string) { l.HouseName = v }},
	{"주택구분", []string{"HOUSE_SECD_NM"}, func(l *models.Listing, v string) { l.HouseSection = v }},
	{"세부구분", []string{"HOUSE_DTL_SECD_NM"}, func(l *models.Listing, v string) { l.HouseDetailSection = v }},
	{"공급지역", []string{"SUBSCRPT_AREA_CODE_NM"}, func(l *models.Listing, v string) { l.SupplyRegion = v }},
	{"모집공고일", []string{"RCRIT_PBLANC_DE"}, func(l *models.Listing, v string) { l.RecruitNoticeDate = v }},
	{"접수시작일", []string{"RCEPT_BGNDE"}, func(l *models.Listing, v string) { l.ReceptionStartDate = v }},
	{"계약시작일", []string{"CNTRCT_CNCLS_BGNDE"}, func(l *models.Listing, v string) { l.ContractStartDate = v }},
	{"계약종료일", []string{"CNTRCT_CNCLS_ENDDE"}, func(l *models.Listing, v string) { l.ContractEndDate = v }},
	{"문의처 전화번호", []string{"MDHS_TELNO"}, func(l *models.Listing, v string) { l.ContactPhone = v }},
	{"공급위치 주소", []string{"HSSPLY_ADRES"}, func(l *models.Listing, v string) { l.SupplyAddress = v }},
	{"사업주체명", []string{"BSNS_MBY_NM"}, func(l *models.Listing, v string) { l.Developer = v }},
	{"시공사명", []string{"CNSTRCT_ENTRPS_NM"}, func(l *models.Listing, v string) { l.Constructor = v }},
	{"입주예정월", []string{"MVN_PREARNGE_YM"}, func(l *models.Listing, v string) { l.MoveInMonth = v }},
	{"분양가 상한제 여부", []string{"PARCPRC_ULS_AT"}, func(l *models.Listing, v string) { l.PriceCap = v }},
	{"투기과열지구 여부", []string{"SPECLT_RDN_EARTH_AT"}, func(l *models.Listing, v string) { l.SpeculationZone = v }},
	{"홈페이지 주소", []string{"HMPG_ADRES"}, func(l *models.Listing, v string) { l.HomepageURL = v }},
	{"모집공고 상세 URL", []string{"PBLANC_URL"}, func(l *models.Listing, v string) { l.NoticeURL = v }},
	{"당첨자 발표일", []string{"PRZWNER_PRESNATN_DE"}, func(l *models.Listing, v string) { l.WinnerAnnounceDate = v }},
	{"일반공급 접수 시작일", []string{"GNRL_RCEPT_BGNDE"}, func(l *models.Listing, v string) { l.GeneralReceptionStart = v }},
	{"일반공급 접수 종료일", []string{"GNRL_RCEPT_ENDDE"}, func(l *models.Listing, v string) { l.GeneralReceptionEnd = v }},
	{"총 공급세대수", []string{"TOT_SUPLY_HSHLDCO"}, func(l *models.Listing, v string) { l.TotalSupply = v }},
	{"모델번호", []string{"MODEL_NO"}, func(l *models.Listing, v string) { l.ModelNo = v }},
	{"전용면적", []string{"EXCLUSE_AR"}, func(l *models.Listing, v string) { l.ExclusiveArea = v }},
	{"공급금액 (분양최고급액)", []string{"SUPLY_AMOUNT"}, func(l *models.Listing, v string) { l.SupplyAmount = v }},
	{"청약신청금", []string{"SUBSCRPT_REQST_AMOUNT"}, func(l *models.Listing, v string) { l.SubscriptionDeposit = v }},
	{"주택형", []string{"HOUSE_TY"}, func(l *models.Listing, v string) { l.HouseType = v }},
	{"청약접수 시작일", []string{"SUBSCRPT_RCEPT_BGNDE"}, func(l *models.Listing, v string) { l.SubscriptionStart = v }},
	{"청약접수 종료일", []string{"SUBSCRPT_RCEPT_ENDDE"}, func(l *models.Listing, v string) { l.SubscriptionEnd = v }},
}

// Transformer projects raw records onto models.Listing.
type Transformer struct {
	fields []fieldSpec
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{fields: fields}
}

// Transform builds a Listing for category from raw. Every field not present in raw is N/A.
func (t *Transformer) Transform(raw models.RawRecord, category, closingDate string) models.Listing {
	l := models.Listing{
		Category:         category,
		ReceptionEndDate: closingDate,
	}

	for _, f := range t.fields {
		f.set(&l, lookup(raw, f.keys))
	}

	return l
}

func lookup(raw models.RawRecord, keys []string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return FormatValue(v)
		}
	}

	return models.NotAvailable
}

// FormatValue renders a decoded JSON value as text. Numbers never use exponents
// or trailing zeros; booleans become Y or N.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return models.NotAvailable
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}

		return val.String()
	case bool:
		if val {
			return "Y"
		}

		return "N"
	default:
		return fmt.Sprint(val)
	}
}

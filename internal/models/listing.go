// Package models defines the records that flow from the collector to the exporters.
package models

// NotAvailable marks a field the API did not supply.
const NotAvailable = "N/A"

// RawRecord is one element of an API page's data array.
type RawRecord map[string]any

// Listing is one subscription announcement projected onto the canonical field set.
type Listing struct {
	Category              string `json:"주택유형"`
	HouseManageNo         string `json:"주택관리번호"`
	PblancNo              string `json:"공고번호"`
	HouseName             string `json:"주택명"`
	HouseSection          string `json:"주택구분"`
	HouseDetailSection    string `json:"세부구분"`
	SupplyRegion          string `json:"공급지역"`
	RecruitNoticeDate     string `json:"모집공고일"`
	ReceptionStartDate    string `json:"접수시작일"`
	ReceptionEndDate      string `json:"접수종료일"`
	ContractStartDate     string `json:"계약시작일"`
	ContractEndDate       string `json:"계약종료일"`
	ContactPhone          string `json:"문의처 전화번호"`
	SupplyAddress         string `json:"공급위치 주소"`
	Developer             string `json:"사업주체명"`
	Constructor           string `json:"시공사명"`
	MoveInMonth           string `json:"입주예정월"`
	PriceCap              string `json:"분양가 상한제 여부"`
	SpeculationZone       string `json:"투기과열지구 여부"`
	HomepageURL           string `json:"홈페이지 주소"`
	NoticeURL             string `json:"모집공고 상세 URL"`
	WinnerAnnounceDate    string `json:"당첨자 발표일"`
	GeneralReceptionStart string `json:"일반공급 접수 시작일"`
	GeneralReceptionEnd   string `json:"일반공급 접수 종료일"`
	TotalSupply           string `json:"총 공급세대수"`
	ModelNo               string `json:"모델번호"`
	ExclusiveArea         string `json:"전용면적"`
	SupplyAmount          string `json:"공급금액 (분양최고급액)"`
	SubscriptionDeposit   string `json:"청약신청금"`
	HouseType             string `json:"주택형"`
	SubscriptionStart     string `json:"청약접수 시작일"`
	SubscriptionEnd       string `json:"청약접수 종료일"`

	// NoticeText is filled by enrichment.
	NoticeText string `json:"모집공고문_전문,omitempty"`
}

// NoticeTextLabel is the column label of Listing.NoticeText.
const NoticeTextLabel = "모집공고문_전문"

// Field is one labelled value of a Listing.
type Field struct {
	Label string
	Value string
}

// Fields returns the canonical fields in column order. NoticeText is not included.
func (l *Listing) Fields() []Field {
	return []Field{
		{"주택유형", l.Category},
		{"주택관리번호", l.HouseManageNo},
		{"공고번호", l.PblancNo},
		{"주택명", l.HouseName},
		{"주택구분", l.HouseSection},
		{"세부구분", l.HouseDetailSection},
		{"공급지역", l.SupplyRegion},
		{"모집공고일", l.RecruitNoticeDate},
		{"접수시작일", l.ReceptionStartDate},
		{"접수종료일", l.ReceptionEndDate},
		{"계약시작일", l.ContractStartDate},
		{"계약종료일", l.ContractEndDate},
		{"문의처 전화번호", l.ContactPhone},
		{"공급위치 주소", l.SupplyAddress},
		{"사업주체명", l.Developer},
		{"시공사명", l.Constructor},
		{"입주예정월", l.MoveInMonth},
		{"분양가 상한제 여부", l.PriceCap},
		{"투기과열지구 여부", l.SpeculationZone},
		{"홈페이지 주소", l.HomepageURL},
		{"모집공고 상세 URL", l.NoticeURL},
		{"당첨자 발표일", l.WinnerAnnounceDate},
		{"일반공급 접수 시작일", l.GeneralReceptionStart},
		{"일반공급 접수 종료일", l.GeneralReceptionEnd},
		{"총 공급세대수", l.TotalSupply},
		{"모델번호", l.ModelNo},
		{"전용면적", l.ExclusiveArea},
		{"공급금액 (분양최고급액)", l.SupplyAmount},
		{"청약신청금", l.SubscriptionDeposit},
		{"주택형", l.HouseType},
		{"청약접수 시작일", l.SubscriptionStart},
		{"청약접수 종료일", l.SubscriptionEnd},
	}
}

// Labels returns the canonical column labels in order.
func Labels() []string {
	var l Listing

	fields := l.Fields()
	labels := make([]string, len(fields))

	for i, f := range fields {
		labels[i] = f.Label
	}

	return labels
}

// Available reports whether v carries a real value.
func Available(v string) bool {
	return v != "" && v != NotAvailable
}

// CategoryCount is the number of kept listings for one category.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RunResult is the outcome of one collection run.
type RunResult struct {
	Listings []Listing
	Counts   []CategoryCount
}

// CountsByCategory returns Counts keyed by label.
func (r RunResult) CountsByCategory() map[string]int {
	m := make(map[string]int, len(r.Counts))
	for _, c := range r.Counts {
		m[c.Label] = c.Count
	}

	return m
}

// Total returns the number of listings.
func (r RunResult) Total() int {
	return len(r.Listings)
}

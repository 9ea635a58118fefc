package usecase

import "atlantic-drive-backend/internal/domain"

// SpamReasonCompanyWebsite is logged when the company website field is filled
// on a non-executive enquiry
const SpamReasonCompanyWebsite = "company_website_on_non_executive"

// IsSpam reports whether an enquiry carries the bot-like field combination:
// a company website on any service other than executive / corporate.
// Any content counts, whitespace included.
func IsSpam(req *domain.EnquiryRequest) (bool, string) {
	if req.CompanyWebsite != "" && !req.IsExecutive() {
		return true, SpamReasonCompanyWebsite
	}
	return false, ""
}

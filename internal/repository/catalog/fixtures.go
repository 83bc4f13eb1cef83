package catalog

import (
	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	dompat "github.com/kailas-cloud/showcase/internal/domain/patient"
)

// defaultDocuments is the knowledge base behind the Enterprise RAG demo.
func defaultDocuments() []domdoc.Document {
	return []domdoc.Document{
		domdoc.Reconstruct("doc-1", "Employee Remote Work Policy",
			"Employees may work remote up to three days per week with manager approval. "+
				"The company provides a home office equipment stipend of $500 per year for monitors, "+
				"chairs and other equipment needed for remote work.",
			"HR"),
		domdoc.Reconstruct("doc-2", "Expense Reimbursement Guidelines",
			"Submit expense reports within 30 days of purchase. Travel, meals and client entertainment "+
				"are reimbursable with itemized receipts. Equipment purchases above $1000 require prior "+
				"approval from finance.",
			"Finance"),
		domdoc.Reconstruct("doc-3", "Information Security Policy",
			"All company laptops must use full disk encryption and a password manager. Report suspected "+
				"phishing emails to the security team immediately. Personal devices must not store customer data.",
			"IT"),
		domdoc.Reconstruct("doc-4", "Paid Time Off and Leave",
			"Full-time employees accrue 20 days of paid time off per year. Unused days roll over up to a "+
				"maximum of 5 days. Parental leave is 16 weeks fully paid.",
			"HR"),
		domdoc.Reconstruct("doc-5", "Onboarding Checklist for New Hires",
			"New hires receive laptop access, badge and benefits enrollment during the first week. Managers "+
				"schedule a 30, 60 and 90 day check in with every new team member.",
			"HR"),
		domdoc.Reconstruct("doc-6", "Quarterly Product Roadmap",
			"The Q3 roadmap focuses on the analytics dashboard, SSO integration and a redesigned mobile "+
				"experience. Feature requests are prioritized by customer impact and engineering effort.",
			"Product"),
		domdoc.Reconstruct("doc-7", "Customer Support Escalation Process",
			"Tier 1 agents escalate unresolved tickets after 24 hours. Critical outages page the on-call "+
				"engineer immediately and customers receive status updates every 30 minutes.",
			"Support"),
		domdoc.Reconstruct("doc-8", "Health Insurance Benefits Overview",
			"The company covers 90 percent of medical, dental and vision premiums for employees and 75 "+
				"percent for dependents. Open enrollment runs every November.",
			"HR"),
		domdoc.Reconstruct("doc-9", "Code Review Standards",
			"Every pull request needs one approving review and passing CI before merge. Reviewers check "+
				"tests, naming, error handling and documentation.",
			"Engineering"),
		domdoc.Reconstruct("doc-10", "Data Retention and Privacy Policy",
			"Customer records are retained for seven years and then deleted. Requests to export or erase "+
				"personal data are fulfilled within 30 days in line with GDPR.",
			"Legal"),
	}
}

// defaultPatients is the cohort behind the Patient Matching demo.
// Patients 1 and 3 share an identical preference vector.
func defaultPatients() []dompat.Patient {
	return []dompat.Patient{
		dompat.Reconstruct(1, "Sarah Johnson", 45, "Type 2 Diabetes", []int{4, 2, 5, 3, 4, 2, 3, 5}),
		dompat.Reconstruct(2, "Michael Chen", 52, "Hypertension", []int{3, 4, 2, 5, 3, 4, 2, 3}),
		dompat.Reconstruct(3, "Emily Rodriguez", 38, "Type 2 Diabetes", []int{4, 2, 5, 3, 4, 2, 3, 5}),
		dompat.Reconstruct(4, "David Kim", 61, "Coronary Artery Disease", []int{2, 5, 3, 4, 2, 5, 4, 2}),
		dompat.Reconstruct(5, "Lisa Thompson", 29, "Asthma", []int{5, 3, 4, 2, 5, 3, 2, 4}),
		dompat.Reconstruct(6, "James Wilson", 47, "Type 2 Diabetes", []int{4, 3, 5, 3, 4, 2, 3, 4}),
		dompat.Reconstruct(7, "Maria Garcia", 55, "Hypertension", []int{3, 4, 3, 5, 3, 4, 2, 3}),
		dompat.Reconstruct(8, "Robert Brown", 68, "Chronic Kidney Disease", []int{2, 4, 2, 4, 3, 5, 5, 1}),
	}
}

package triage

import "github.com/linesmerrill/safedesk-api/models"

const (
	defaultDisplayName = "there"
	defaultTeamName    = "our legal team"

	greetingTemplate = "Thank you for sharing this with me, %s. I understand this must be difficult for you."
)

// SessionGreeting seeds every new chat session
const SessionGreeting = `Hello! I'm your AI Legal Assistant. I'm here to help you understand your legal situation and connect you with the right support.

**How can I assist you today?**

Please describe your situation in as much detail as you're comfortable sharing. Include:
- What happened and when
- Who was involved
- How it has affected you
- Any steps you've already taken

Your information is confidential and will help me provide the best guidance. 🔒`

var explanations = map[models.CaseType]string{
	models.CaseWorkplaceHarassment: `Based on your description, this appears to be a **workplace harassment** case. Workplace harassment includes unwelcome conduct that creates an intimidating, hostile, or offensive work environment. Under employment law, employers have a legal duty to provide a safe workplace free from harassment.`,

	models.CaseSexualHarassment: `This situation involves **sexual harassment**, which is a serious violation of employment law. Sexual harassment includes unwelcome sexual advances, requests for sexual favors, or other verbal/physical conduct of a sexual nature. This is illegal under Title VII of the Civil Rights Act and similar state laws.`,

	models.CaseDiscrimination: `Your case involves **workplace discrimination**. Discrimination occurs when an employer treats you unfairly because of protected characteristics like race, gender, age, religion, or disability. This is prohibited by federal and state anti-discrimination laws.`,

	models.CaseRetaliation: `This appears to be **workplace retaliation**, which occurs when an employer punishes an employee for engaging in legally protected activity, such as filing a complaint or reporting illegal conduct. Retaliation is illegal and you have strong legal protections.`,

	models.CaseWrongfulTermination: `This may constitute **wrongful termination**. While most employment is "at-will," you cannot be fired for illegal reasons such as discrimination, retaliation, or breach of contract. You may have grounds for a legal claim.`,

	models.CaseWageDispute: `This is a **wage and hour dispute**. Employers are legally required to pay minimum wage, overtime, and provide proper compensation. Wage theft is illegal, and you have the right to recover unpaid wages plus penalties.`,

	models.CaseOther: `I understand you're facing a challenging workplace situation. While I need more specific details to categorize this precisely, workplace rights are protected by various employment laws, and you have options for addressing this issue.`,
}

var recommendations = map[models.Severity]Recommendation{
	models.SeverityHigh: {
		Message: `**⚠️ This is a serious matter that requires immediate legal attention.**

Given the severity of your situation, I strongly recommend you:

1. **Document everything immediately** - Write down dates, times, what happened, and any witnesses
2. **Preserve all evidence** - Save emails, text messages, photos, or recordings (where legal)
3. **Report to authorities if applicable** - For threats, violence, or criminal conduct, contact police
4. **Consult with a lawyer urgently** - A qualified employment attorney can protect your rights and guide you through the legal process

Your safety and legal rights are paramount. I'm recommending an experienced lawyer from our panel who specializes in these cases.`,
		RequiresLawyer: true,
		Urgent:         true,
	},
	models.SeverityMedium: {
		Message: `**This situation warrants professional legal guidance.**

Based on the details you've shared, I recommend:

1. **Document the incidents** - Keep a detailed record with dates, times, people involved, and witnesses
2. **Follow internal procedures** - If you haven't already, report this to HR or your supervisor (in writing)
3. **Preserve evidence** - Save all relevant communications and documentation
4. **Consult with a lawyer** - An employment attorney can assess your case, explain your rights, and advise on the best course of action

While you may be able to resolve this through internal channels, having legal counsel ensures your rights are protected. I'll connect you with a qualified lawyer who handles these cases.`,
		RequiresLawyer: true,
	},
	models.SeverityLow: {
		Message: `**Here are some initial steps you can take:**

1. **Document what happened** - Write down the date, time, what occurred, and any witnesses
2. **Review your employee handbook** - Check your company's policies on this issue
3. **Consider reporting internally** - You may want to speak with HR or a supervisor (preferably in writing)
4. **Know your rights** - Familiarize yourself with your company's complaint procedures

Many workplace issues can be resolved through internal processes. However, if:
- The situation continues or worsens
- You face retaliation for speaking up
- Your employer doesn't take appropriate action
- You feel your rights have been violated

**Then consulting with a lawyer would be advisable.**

Would you like me to connect you with a qualified employment attorney who can provide a free initial consultation?`,
	},
}

const confirmTemplate = `Great! I'm connecting you with %s.

**Next Steps:**

1. You'll receive an email confirmation shortly
2. The lawyer's office will contact you within 24 hours to schedule your consultation
3. Prepare any documents or evidence you have
4. Write down questions you want to ask

**In the meantime:**
- Document everything related to your case
- Don't discuss this with colleagues or on social media
- Save all relevant communications

Is there anything else you'd like to know about the process?`

const declineTemplate = `I understand. You can reach out whenever you're ready.

**Remember:**
- Keep documenting incidents as they occur
- Save this chat - you can return anytime
- Your legal rights don't expire immediately, but acting sooner is often better
- We're here 24/7 if you change your mind

You can also:
- File an anonymous complaint through our system
- Access our resource library for more information
- Join our support community (confidential)

Would you like information about any of these options?`

const evidenceTemplate = `**📝 Evidence Collection Guide:**

**What to Document:**
1. **Written Records** - Emails, texts, notes, performance reviews
2. **Timeline** - Dates, times, locations of each incident
3. **Witnesses** - Names and contact info of anyone who saw/heard incidents
4. **Impact** - Medical records, therapy notes, job performance changes
5. **Company Policies** - Employee handbook, complaint procedures

**How to Preserve Evidence:**
- Forward work emails to personal email
- Screenshot text messages
- Keep a detailed journal (date each entry)
- Store everything in a secure location

**⚠️ Important:** Don't delete anything, even if it seems minor.

Would you like help with anything else?`

const costTemplate = `**💰 Legal Costs & Options:**

**Free Options:**
- Most lawyers offer free initial consultations (30-60 min)
- We can connect you with pro bono (free) legal aid if you qualify
- Some cases are taken on contingency (lawyer only paid if you win)

**Employment Law Cases:**
Many employment lawyers work on contingency for strong cases, meaning:
- No upfront costs
- No payment unless you win
- Lawyer takes a percentage of settlement/award (typically 30-40%%)

**Your Case:**
%s

Would you like to proceed with the free consultation?`

const (
	contingencyNote  = "Your case may qualify for contingency representation."
	consultationNote = "We can discuss cost options during your consultation."
)

const clarifyTemplate = `I'm here to help! Could you please clarify:

1. Would you like to speak with the recommended lawyer?
2. Do you need more information about your legal rights?
3. Do you have questions about the process?
4. Would you like guidance on documenting your case?

Just let me know how I can assist you further.`

const lawyerTemplate = `**👨‍⚖️ Recommended Lawyer: %s**

**Specialization:** %s
**Experience:** %d years
**Success Rate:** %s%%
**Rating:** ⭐ %s/5
**Cases Handled:** %d+
**Consultation Fee:** %s
%s
**Contact:** %s | %s

Would you like me to help you schedule a consultation with %s?`

package templates

// builtinTemplates returns the built-in page template library: the standard
// service+location page plus the emergency, commercial, and residential
// qualified variants. Body copy is written to clear the minimum word count on
// its own so template-tier pages are publishable without enhancement.
func builtinTemplates() []*PageTemplate {
	return []*PageTemplate{
		serviceLocationTemplate(),
		emergencyTemplate(),
		commercialTemplate(),
		residentialTemplate(),
	}
}

func serviceLocationTemplate() *PageTemplate {
	return &PageTemplate{
		ID:              "service_location",
		Title:           "{service_name} in {location_name} | {business_name}",
		MetaDescription: "Professional {service_name} in {location_name}. {business_name} offers licensed, insured service with {years}+ years of experience. Rated {rating} stars by {review_count} customers. Call {phone} for a free estimate.",
		Heading:         "Expert {service_name} in {location_name}",
		Paragraphs: []string{
			"When you need dependable {service_name} in {location_name}, {business_name} is the team your neighbors already trust. For more than {years} years we have helped homeowners and property managers across {location_name} and the wider {region} area solve problems quickly, safely, and at a fair price. Every job starts with a clear written estimate, so you know exactly what the work involves before we begin.",

			"Our {location_name} technicians are licensed, background checked, and trained on the latest equipment and techniques for {service_name}. We arrive on time in fully stocked service vehicles, which means most jobs are finished in a single visit. No waiting on parts, no repeated trips, and no surprise charges when the work is done.",

			"What sets {business_name} apart in {location_name} is accountability. We stand behind every {service_name} project with a workmanship guarantee, and our {rating} star average across {review_count} verified reviews reflects how seriously we take it. If something is not right, we come back and make it right at no additional cost.",

			"We understand that every property in {location_name} is different. Older homes in the area often bring their own challenges, while newer construction has modern systems that demand up-to-date expertise. Our team evaluates your specific situation before recommending anything, and we will always explain the options in plain language, including what can safely wait and what should be handled now.",

			"Pricing for {service_name} in {location_name} is transparent and flat-rate wherever possible. You approve the price before work begins, and the quote we give is the price you pay. Financing options are available for larger projects, and we are happy to work through the details with you over the phone at {phone}.",

			"Scheduling is simple. Call {phone} or book online and we will confirm a convenient window, send a reminder before arrival, and let you know exactly who is coming. Our dispatchers live and work in the {region} area, so they know the local streets and can route the nearest available technician to you fast.",

			"Beyond one-off repairs, many of our {location_name} customers rely on {business_name} for ongoing maintenance. Regular service extends the life of your equipment, keeps warranties valid, and catches small issues before they become expensive failures. Ask about our maintenance plans when you call; members receive priority scheduling and discounted rates on all {service_name} work.",

			"Choosing a local company matters. {business_name} has been part of the {region} community for over {years} years. We hire locally, support area organizations, and depend on our reputation with neighbors like you. When you call us for {service_name} in {location_name}, you are dealing with people who will still be here next year, standing behind the work.",
		},
		FAQs: []FAQTemplate{
			{
				Question: "How much does {service_name} cost in {location_name}?",
				Answer:   "Costs vary with the scope of the job, but {business_name} provides free written estimates before any work begins. We use flat-rate pricing wherever possible, so the quote you approve is the price you pay. Call {phone} and we can usually give a realistic range over the phone.",
			},
			{
				Question: "Is {business_name} licensed and insured for {service_name}?",
				Answer:   "Yes. Every technician we send to a {location_name} property is fully licensed and covered by comprehensive liability insurance. We are glad to provide proof of licensing and insurance on request, before any work starts.",
			},
			{
				Question: "How quickly can you schedule {service_name} in {location_name}?",
				Answer:   "In most cases we can offer same-week appointments throughout {location_name} and the surrounding {region} area, and urgent issues are prioritized. Call {phone} and our dispatch team will find the earliest window that works for you.",
			},
			{
				Question: "Do you guarantee your {service_name} work?",
				Answer:   "Every job comes with our workmanship guarantee. If anything about the completed work is not right, we return and correct it at no additional charge. That guarantee is a big part of why {business_name} holds a {rating} star rating across {review_count} reviews.",
			},
			{
				Question: "What areas around {location_name} do you serve?",
				Answer:   "We serve all of {location_name} plus the surrounding communities across the {region} region. If you are unsure whether your address falls in our service area, call {phone} and we will confirm right away.",
			},
		},
		Keywords: []string{
			"{service_name} {location_name}",
			"{service_name} near me",
			"best {service_name} {location_name}",
			"licensed {service_name} {region}",
		},
	}
}

func emergencyTemplate() *PageTemplate {
	return &PageTemplate{
		ID:              "emergency_service_location",
		Title:           "24/7 Emergency {service_name} in {location_name} | {business_name}",
		MetaDescription: "Emergency {service_name} in {location_name}, available 24/7. {business_name} dispatches licensed technicians fast, day or night. Rated {rating} stars. Call {phone} now.",
		Heading:         "Emergency {service_name} in {location_name} — Available 24/7",
		Paragraphs: []string{
			"An emergency never waits for business hours, and neither do we. {business_name} provides true 24/7 emergency {service_name} throughout {location_name}, with live dispatchers answering {phone} around the clock. When you call, a real person picks up, takes the details, and gets the nearest qualified technician moving toward your property immediately.",

			"Speed matters in an emergency, but so does doing the job right. Our on-call {location_name} technicians carry the parts and equipment needed to resolve the most common emergency {service_name} situations on the first visit. They are the same licensed, background-checked professionals who handle our scheduled work, not a second-string overnight crew.",

			"While you wait for our technician, the dispatcher will walk you through any immediate safety steps, like where to shut things off and what to keep clear. Those few minutes of guidance can significantly limit damage to your home, and it costs you nothing. It is part of how {business_name} has earned a {rating} star rating from {review_count} customers across the {region} area.",

			"Emergency pricing is published and straightforward. You will be told the after-hours dispatch fee up front when you call {phone}, and the technician will quote the full repair price on site before starting. No work begins until you approve it. We believe an emergency is the worst possible time for billing surprises.",

			"Once the immediate problem is contained, we assess whether any follow-up work is genuinely needed and put it in writing. Some emergencies reveal underlying issues worth fixing; many do not. We will give you an honest read either way, because our {years} years serving {location_name} depend on customers trusting what we tell them.",

			"Water damage, loss of heat in winter, electrical hazards, and failed equipment do not resolve themselves, and delay usually raises the cost of repair. If you are facing an active {service_name} emergency anywhere in {location_name}, do not wait until morning. Call {phone} now and we will have help on the way within minutes.",

			"For property managers in {location_name}, {business_name} offers emergency response agreements with guaranteed response times and consolidated billing. One call covers every property in your portfolio across the {region} region, any hour of the day, every day of the year.",
		},
		FAQs: []FAQTemplate{
			{
				Question: "How fast can you respond to a {service_name} emergency in {location_name}?",
				Answer:   "Our dispatchers answer {phone} 24/7 and send the nearest on-call technician immediately. Typical response times across {location_name} are under an hour, and the dispatcher will give you a realistic arrival estimate when you call.",
			},
			{
				Question: "Do you charge extra for night, weekend, or holiday calls?",
				Answer:   "There is an after-hours dispatch fee, which we state clearly when you call. The repair itself is quoted on site before any work begins, so you always approve the full price first.",
			},
			{
				Question: "What should I do while waiting for the technician?",
				Answer:   "Our dispatcher will walk you through the immediate safety steps for your specific situation, such as shutting off supply lines or power to affected areas. Follow their guidance and keep the area clear until the technician arrives.",
			},
			{
				Question: "Is emergency work guaranteed like regular work?",
				Answer:   "Yes. Emergency {service_name} repairs carry the same workmanship guarantee as our scheduled work in {location_name}. If anything is not right afterwards, we come back and fix it at no additional charge.",
			},
			{
				Question: "Will the emergency technician carry the parts needed?",
				Answer:   "Our on-call vehicles are stocked for the most common emergency {service_name} failures in the {region} area, so most situations are resolved on the first visit. If a specialty part is required, we secure the situation immediately and source the part on a priority basis.",
			},
		},
		Keywords: []string{
			"emergency {service_name} {location_name}",
			"24 hour {service_name} {location_name}",
			"{service_name} emergency near me",
		},
	}
}

func commercialTemplate() *PageTemplate {
	return &PageTemplate{
		ID:              "commercial_service_location",
		Title:           "Commercial {service_name} in {location_name} | {business_name}",
		MetaDescription: "Commercial {service_name} for businesses in {location_name}. {business_name} delivers code-compliant work with minimal disruption to your operations. {years}+ years of experience. Call {phone}.",
		Heading:         "Commercial {service_name} for {location_name} Businesses",
		Paragraphs: []string{
			"Commercial properties in {location_name} demand a different standard of {service_name}: larger systems, stricter codes, compressed timelines, and zero tolerance for disruption to your operations. {business_name} has served the {region} business community for over {years} years, and our commercial division is built around those realities.",

			"We work with property managers, facility directors, general contractors, and owner-operators across {location_name}. Whether it is a retail storefront, an office building, a restaurant, a warehouse, or a multi-unit residential property, our commercial technicians are experienced with the systems and the compliance requirements that come with each.",

			"Scheduling is driven by your business, not ours. We routinely perform commercial {service_name} work during off-hours, overnight windows, and planned shutdowns so your staff and customers are never inconvenienced. Project timelines are agreed in writing, and our project leads communicate progress daily on multi-day engagements.",

			"Every commercial engagement begins with a detailed scope and a formal proposal. You get itemized pricing, a clear schedule, proof of licensing and insurance, and the documentation your compliance files require. Change orders, when genuinely necessary, are priced and approved in writing before any additional work proceeds.",

			"Downtime is expensive, which is why many {location_name} businesses put {business_name} on a planned maintenance program. Scheduled service keeps critical systems reliable, satisfies warranty and insurance requirements, and replaces surprise failures with predictable budgeting. Program customers also receive priority emergency response across the {region} area.",

			"Our commercial references speak for themselves: a {rating} star average across {review_count} reviews, with long-standing relationships among {location_name} businesses that have used us for years. We are glad to provide references relevant to your property type alongside any proposal.",

			"When something does fail, response time decides how expensive the failure gets. Commercial customers in {location_name} reach a live dispatcher at {phone} around the clock, and program customers jump to the front of the queue. Our technicians arrive with the commercial-grade parts and equipment the job calls for, diagnose quickly, and give your facility contact a clear verbal report on site before any repair work is approved.",

			"We also coordinate cleanly with the other trades and stakeholders a commercial project involves. General contractors get submittals and schedule commitments they can build around. Property managers get one point of contact and consolidated invoicing across sites. Tenants get posted notice and a tidy workspace. It is the operational discipline that separates a commercial {service_name} partner from a residential outfit taking on commercial work.",

			"If you are comparing bids for commercial {service_name} in {location_name}, talk to us before you decide. Call {phone} and ask for the commercial team. We will visit your site, assess the scope honestly, and give you a proposal that stands up to scrutiny on both price and specification.",
		},
		FAQs: []FAQTemplate{
			{
				Question: "Can you work outside our business hours in {location_name}?",
				Answer:   "Yes. Off-hours and overnight work is standard practice for our commercial division, and we schedule around your operations at no change to the agreed project price for pre-planned work.",
			},
			{
				Question: "Do you provide documentation for compliance and insurance files?",
				Answer:   "Every commercial proposal includes proof of licensing and insurance, and completed work is documented for your records. We can match the documentation format your compliance process requires.",
			},
			{
				Question: "Do you offer maintenance contracts for commercial properties?",
				Answer:   "We do. Planned maintenance programs cover scheduled service, priority emergency response across the {region} area, and consolidated billing for multi-site portfolios. Call {phone} for program pricing.",
			},
			{
				Question: "How are commercial projects priced?",
				Answer:   "Through a formal written proposal with itemized pricing and an agreed schedule. Any change orders are priced and approved in writing before additional work proceeds, so your budget holds.",
			},
			{
				Question: "What types of commercial properties in {location_name} do you serve?",
				Answer:   "Retail, office, restaurant, warehouse, and multi-unit residential properties across {location_name} and the wider {region} area. Our commercial technicians are experienced with the systems and code requirements specific to each property type, and we can provide references relevant to yours.",
			},
		},
		Keywords: []string{
			"commercial {service_name} {location_name}",
			"{service_name} contractor {location_name}",
			"commercial {service_name} company {region}",
		},
	}
}

func residentialTemplate() *PageTemplate {
	return &PageTemplate{
		ID:              "residential_service_location",
		Title:           "Residential {service_name} in {location_name} | {business_name}",
		MetaDescription: "Home {service_name} in {location_name} from {business_name}. Friendly, licensed technicians, up-front pricing, and a satisfaction guarantee. Rated {rating} stars. Call {phone}.",
		Heading:         "Home {service_name} in {location_name} You Can Trust",
		Paragraphs: []string{
			"Your home is your biggest investment, and letting someone work on it requires trust. For over {years} years, homeowners across {location_name} have trusted {business_name} for residential {service_name} because we treat every house like it belongs to a neighbor — because around here, it usually does.",

			"Our residential technicians are licensed, insured, and background checked, and they show up when we say they will. You will get a heads-up before arrival with the name of your technician, and they will take the time to listen to what you have noticed before jumping to conclusions. Good residential {service_name} starts with paying attention.",

			"We explain everything in plain language. After inspecting the issue, your technician will lay out the options — what must be fixed now, what can wait, and what each path costs. You approve the exact price before any work begins. No pressure, no scare tactics, and no invented urgency. That approach has earned us a {rating} star average from {review_count} {location_name} area homeowners.",

			"Respect for your home is non-negotiable. Our technicians wear shoe covers, lay down protective coverings where they work, and leave the workspace as clean as they found it. Small things, but they matter, and they are part of how we train everyone who wears the {business_name} uniform.",

			"Homes across {location_name} and the {region} area range from century-old character houses to brand-new builds, and each brings its own {service_name} considerations. Our team knows the local housing stock well, which means faster diagnosis and recommendations that fit your actual house instead of a generic checklist.",

			"Staying ahead of problems is cheaper than reacting to them. Ask about our residential maintenance plan: an annual checkup that keeps your systems running efficiently, preserves manufacturer warranties, and gives you priority scheduling plus member pricing on any {service_name} work during the year.",

			"Booking is easy. Call {phone} or schedule online, and choose an arrival window that fits your day. Most routine residential {service_name} visits in {location_name} can be scheduled within the week, and we will always confirm before we arrive. We look forward to taking care of your home.",
		},
		FAQs: []FAQTemplate{
			{
				Question: "Do I need to be home during the {service_name} visit?",
				Answer:   "For most residential work we ask that an adult be home to walk through the issue and approve the quoted price. For follow-up visits on approved work, we can often make arrangements that fit your schedule.",
			},
			{
				Question: "Will I know the price before work starts?",
				Answer:   "Always. Your technician quotes the complete price after diagnosing the issue, and nothing happens until you approve it. The approved price is what you pay, regardless of how long the job takes.",
			},
			{
				Question: "Are your technicians background checked?",
				Answer:   "Yes. Every {business_name} technician entering a {location_name} home is licensed, insured, and has passed a background check. You will receive the technician's name before they arrive.",
			},
			{
				Question: "Do you offer any homeowner maintenance plans?",
				Answer:   "We do. The residential plan includes an annual system checkup, priority scheduling, and member pricing on all {service_name} work. It is the most economical way to keep things running and catch issues early.",
			},
			{
				Question: "What if I'm not satisfied with the work?",
				Answer:   "Tell us and we will make it right. All residential {service_name} work in {location_name} is covered by our satisfaction guarantee, and we return at no charge if the completed work has any problem.",
			},
		},
		Keywords: []string{
			"residential {service_name} {location_name}",
			"home {service_name} {location_name}",
			"{service_name} for homes {region}",
		},
	}
}

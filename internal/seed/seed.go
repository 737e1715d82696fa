// Package seed provisions the admin account and the sample job postings.
package seed

import (
	"context"
	"fmt"
	"io"

	"jobboard/config"
	"jobboard/internal/services"
	"jobboard/internal/transport/dto"

	"github.com/go-playground/validator/v10"
)

func ptrBool(b bool) *bool { return &b }

// SampleJobs are the postings inserted by the seedjobs command.
func SampleJobs() []dto.CreateJobRequest {
	return []dto.CreateJobRequest{
		{
			Title:            "Software Specialist",
			CompanyName:      "Innovate Corp",
			Location:         "Ill York, NY",
			Description:      "Lorem ipsum be the bonware blerching os heeatainry or uodone lorab amd esanalime ui dore tell, ti et cinerise ta fertse fantas. Planieso to or tneatiso, cut blunecn and fam la consafala a nireran and debue thesthy aute bons bote wn the aufpisture d saring the the spohalited a me the instelis and specilalie.",
			Requirements:     "Bachelor's degree in Computer Science or related field\n3+ years of software development experience\nProficiency in modern programming languages",
			Responsibilities: "Design and develop software solutions\nCollaborate with cross-functional teams\nMaintain and improve existing codebases",
			SalaryRange:      "$80,000 - $120,000",
			JobType:          "Full-time",
			IsActive:         ptrBool(true),
		},
		{
			Title:            "Global Tech",
			CompanyName:      "Global Tech",
			Location:         "Few York, NY",
			Description:      "Join our dynamic team as we build the future of technology. We are looking for passionate individuals who want to make a difference.",
			Requirements:     "Strong problem-solving skills\nExcellent communication abilities\nTeam player with leadership potential",
			Responsibilities: "Lead technical projects\nMentor junior developers\nDrive innovation",
			SalaryRange:      "$90,000 - $140,000",
			JobType:          "Full-time",
			IsActive:         ptrBool(true),
		},
		{
			Title:            "Project Manager",
			CompanyName:      "Creative Solutions",
			Location:         "London, UK",
			Description:      "We are seeking an experienced Project Manager to oversee multiple client projects and ensure successful delivery.",
			Requirements:     "PMP certification preferred\n5+ years project management experience\nExcellent organizational skills",
			Responsibilities: "Manage project timelines and budgets\nCoordinate with stakeholders\nEnsure quality deliverables",
			SalaryRange:      "£60,000 - £85,000",
			JobType:          "Full-time",
			IsActive:         ptrBool(true),
		},
		{
			Title:            "Marketing Specialist",
			CompanyName:      "Innovate Corp",
			Location:         "Remote",
			Description:      "Drive our marketing initiatives and help us reach new heights. Perfect for creative minds who love data-driven strategies.",
			Requirements:     "Marketing degree or equivalent experience\nSocial media expertise\nAnalytical mindset",
			Responsibilities: "Develop marketing campaigns\nAnalyze market trends\nManage social media presence",
			SalaryRange:      "$55,000 - $75,000",
			JobType:          "Full-time",
			IsActive:         ptrBool(true),
		},
	}
}

// Jobs inserts every sample job whose (title, company_name) is not taken yet
// and reports each outcome to out. It returns how many jobs were created.
func Jobs(ctx context.Context, jobs services.JobService, out io.Writer) (int, error) {
	created := 0
	for _, req := range SampleJobs() {
		req := req
		job, isNew, err := jobs.EnsureJob(ctx, &req)
		if err != nil {
			return created, fmt.Errorf("seeding %q at %q: %w", req.Title, req.CompanyName, err)
		}
		if isNew {
			created++
			fmt.Fprintf(out, "Created job: %s at %s\n", job.Title, job.CompanyName)
		} else {
			fmt.Fprintf(out, "Job already exists: %s at %s\n", job.Title, job.CompanyName)
		}
	}
	fmt.Fprintf(out, "\nSuccessfully created %d new job posting(s)\n", created)
	return created, nil
}

// Admin creates the admin account described by cfg unless its username
// already exists. The password is never echoed.
func Admin(ctx context.Context, users services.UserService, validate *validator.Validate, cfg config.AdminConfig, out io.Writer) (bool, error) {
	req := dto.CreateAdminRequest{
		Username: cfg.Username,
		Email:    cfg.Email,
		Password: cfg.Password,
	}
	if err := validate.Struct(req); err != nil {
		return false, fmt.Errorf("invalid admin credentials: %w", err)
	}

	user, created, err := users.EnsureAdmin(ctx, &req)
	if err != nil {
		return false, err
	}
	if !created {
		fmt.Fprintf(out, "User %q already exists.\n", user.Username)
		return false, nil
	}
	fmt.Fprintf(out, "Successfully created admin user %q\n", user.Username)
	return true, nil
}

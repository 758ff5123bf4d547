package rest_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI Document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should pass schema validation", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document the core route surface", func() {
		for _, path := range []string{
			"/auth/login",
			"/users/{id}/template",
			"/admin/system/{kind}",
			"/admin/permissions",
			"/templates/{id}/tasks",
			"/my-onboarding/tasks/{taskId}",
			"/admin/analytics",
			"/admin/calendar/recreate",
			"/cron/reminders",
			"/policies/{id}/accept",
			"/trainings/{id}/enroll",
			"/notifications/read-all",
			"/ai/chat",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should require bearer auth on protected operations", func() {
		me := doc.Paths.Find("/auth/me")
		Expect(me).NotTo(BeNil())
		Expect(me.Get.Security).NotTo(BeNil())
	})
})

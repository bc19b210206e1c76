package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ndtoan/hr-survey-server/controllers"
	"github.com/ndtoan/hr-survey-server/middleware"
	"github.com/ndtoan/hr-survey-server/policy"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimitLogin(), controllers.Login)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthJWT())
		{
			protected.GET("/me", controllers.Me)

			accounts := protected.Group("/accounts")
			{
				accounts.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityAccount), controllers.CreateAccount)
				accounts.GET("", middleware.RequirePermission(policy.ActionRead, policy.EntityAccount), controllers.ListAccounts)
				accounts.GET("/:id", middleware.RequirePermission(policy.ActionRead, policy.EntityAccount), controllers.GetAccount)
				accounts.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityAccount), controllers.UpdateAccount)
				accounts.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityAccount), controllers.DeleteAccount)
				accounts.POST("/:id/reset_password", middleware.RequirePermission(policy.ActionUpdate, policy.EntityAccount), controllers.ResetPassword)
			}

			employees := protected.Group("/employees")
			{
				// /me is open to every authenticated caller; the rest is HR/admin.
				employees.GET("/me", controllers.MyEmployeeProfile)
				employees.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityEmployee), controllers.CreateEmployee)
				employees.GET("", middleware.RequirePermission(policy.ActionRead, policy.EntityEmployee), controllers.ListEmployees)
				employees.GET("/:id", middleware.RequirePermission(policy.ActionRead, policy.EntityEmployee), controllers.GetEmployee)
				employees.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityEmployee), controllers.UpdateEmployee)
				employees.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityEmployee), controllers.DeleteEmployee)
			}

			departments := protected.Group("/departments")
			{
				departments.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityDepartment), controllers.CreateDepartment)
				departments.GET("", controllers.ListDepartments)
				departments.GET("/:id", controllers.GetDepartment)
				departments.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityDepartment), controllers.UpdateDepartment)
				departments.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityDepartment), controllers.DeleteDepartment)
			}

			factors := protected.Group("/factors")
			{
				factors.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityFactor), controllers.CreateFactor)
				factors.GET("", controllers.ListFactors)
				factors.GET("/:id", controllers.GetFactor)
				factors.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityFactor), controllers.UpdateFactor)
				factors.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityFactor), controllers.DeleteFactor)
			}

			surveys := protected.Group("/surveys")
			{
				surveys.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntitySurvey), controllers.CreateSurvey)
				surveys.GET("", controllers.ListSurveys)
				surveys.GET("/:id", controllers.GetSurvey)
				surveys.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntitySurvey), controllers.UpdateSurvey)
				surveys.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntitySurvey), controllers.DeleteSurvey)
				surveys.POST("/:id/submit", controllers.SubmitSurvey)
				surveys.POST("/:id/export", middleware.RequirePermission(policy.ActionCreate, policy.EntityExport), controllers.CreateExport)
			}
			protected.GET("/exports/:job_id", middleware.RequirePermission(policy.ActionRead, policy.EntityExport), controllers.GetExport)

			questions := protected.Group("/questions")
			{
				questions.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityQuestion), controllers.CreateQuestion)
				questions.GET("", controllers.ListQuestions)
				questions.GET("/:id", controllers.GetQuestion)
				questions.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityQuestion), controllers.UpdateQuestion)
				questions.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityQuestion), controllers.DeleteQuestion)
			}

			assignments := protected.Group("/survey-assignments")
			{
				assignments.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityAssignment), controllers.CreateAssignment)
				assignments.GET("", controllers.ListAssignments)
				assignments.GET("/my_assignments", controllers.MyAssignments)
				assignments.GET("/:id", controllers.GetAssignment)
				assignments.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityAssignment), controllers.UpdateAssignment)
				assignments.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityAssignment), controllers.DeleteAssignment)
			}

			trainings := protected.Group("/trainings")
			{
				trainings.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityTraining), controllers.CreateTraining)
				trainings.GET("", controllers.ListTrainings)
				trainings.GET("/:id", controllers.GetTraining)
				trainings.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityTraining), controllers.UpdateTraining)
				trainings.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityTraining), controllers.DeleteTraining)
			}

			trainingAssignments := protected.Group("/training-assignments")
			{
				trainingAssignments.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityTrainingAssignment), controllers.CreateTrainingAssignment)
				trainingAssignments.GET("", controllers.ListTrainingAssignments)
				trainingAssignments.GET("/my_trainings", controllers.MyTrainings)
				trainingAssignments.GET("/:id", controllers.GetTrainingAssignment)
				trainingAssignments.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityTrainingAssignment), controllers.UpdateTrainingAssignment)
				trainingAssignments.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityTrainingAssignment), controllers.DeleteTrainingAssignment)
			}

			responses := protected.Group("/survey-responses")
			{
				responses.POST("", middleware.RequirePermission(policy.ActionCreate, policy.EntityResponse), controllers.CreateResponse)
				responses.GET("", controllers.ListResponses)
				responses.GET("/:id", controllers.GetResponse)
				responses.PUT("/:id", middleware.RequirePermission(policy.ActionUpdate, policy.EntityResponse), controllers.UpdateResponse)
				responses.DELETE("/:id", middleware.RequirePermission(policy.ActionDelete, policy.EntityResponse), controllers.DeleteResponse)
			}
		}
	}
}

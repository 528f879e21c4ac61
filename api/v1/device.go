package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/services"
)

var deviceService = services.NewDeviceService()

// ListDevices godoc
// @Summary List the devices of the authenticated user
// @Tags devices
// @Produce json
// @Success 200 {array} models.Device
// @Router /devices [get]
func ListDevices(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	devices, err := deviceService.ListDevices(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve devices: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   devices,
	})
}

// GetDevice godoc
// @Summary Get a device by ID
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.Device
// @Router /devices/{id} [get]
func GetDevice(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	device, err := deviceService.GetDevice(c.Param("id"), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve device: " + err.Error(),
		})
		return
	}
	if device == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Device not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   device,
	})
}

// CreateDevice godoc
// @Summary Register a device
// @Tags devices
// @Accept json
// @Produce json
// @Param body body dto.CreateDeviceRequest true "Device definition"
// @Success 201 {object} models.Device
// @Router /devices [post]
func CreateDevice(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	device, err := deviceService.CreateDevice(ownerID, req.Name, req.DeviceID, req.AccessToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create device: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   device,
	})
}

// UpdateDevice godoc
// @Summary Update a device
// @Tags devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param body body dto.UpdateDeviceRequest true "Device definition"
// @Success 200 {object} models.Device
// @Router /devices/{id} [patch]
func UpdateDevice(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	device, err := deviceService.UpdateDevice(c.Param("id"), ownerID, req.Name, req.DeviceID, req.AccessToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update device: " + err.Error(),
		})
		return
	}
	if device == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Device not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   device,
	})
}

// DeleteDevice godoc
// @Summary Delete a device
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} map[string]string
// @Router /devices/{id} [delete]
func DeleteDevice(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	deleted, err := deviceService.DeleteDevice(c.Param("id"), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete device: " + err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Device not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Device deleted",
	})
}
